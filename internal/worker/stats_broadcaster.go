package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/logger"
)

// StatsPublisher は統計ブロードキャストのインターフェース
type StatsPublisher interface {
	Broadcast()
}

// StatsBroadcaster は集計統計を定期配信するワーカー
// 変更時の即時配信とは独立に、接続数の変化などを一定間隔で全クライアントに届ける
type StatsBroadcaster struct {
	stats    StatsPublisher
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewStatsBroadcaster は新しい統計ブロードキャスターを作成する
func NewStatsBroadcaster(stats StatsPublisher, interval time.Duration) *StatsBroadcaster {
	return &StatsBroadcaster{
		stats:    stats,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はブロードキャスターを開始する
func (b *StatsBroadcaster) Start(ctx context.Context) {
	logger.Info("統計ブロードキャスター開始", zap.Duration("interval", b.interval))

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	defer close(b.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("統計ブロードキャスター停止（コンテキストキャンセル）")
			return
		case <-b.stopCh:
			logger.Info("統計ブロードキャスター停止（シグナル受信）")
			return
		case <-ticker.C:
			b.stats.Broadcast()
		}
	}
}

// Stop はブロードキャスターを停止する
func (b *StatsBroadcaster) Stop() {
	close(b.stopCh)
	<-b.doneCh
}
