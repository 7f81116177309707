package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/domain/customer"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/protocol"
)

// AuthService はセッション・認証のレジストリ
// 接続ごとの権限判定（管理者トークン）と、ログイン・登録で発行する
// 不透明セッショントークン→顧客IDの対応を管理する
type AuthService struct {
	customers  customer.Directory
	publisher  EventPublisher
	adminToken string

	mu       sync.RWMutex
	sessions map[string]string // token → customerID
}

// NewAuthService は新しい認証サービスを作成する
func NewAuthService(customers customer.Directory, publisher EventPublisher, adminToken string) *AuthService {
	return &AuthService{
		customers:  customers,
		publisher:  publisher,
		adminToken: adminToken,
		sessions:   make(map[string]string),
	}
}

// AuthenticateConnection は提示トークンから接続の権限を判定する
func (s *AuthService) AuthenticateConnection(token string) protocol.Role {
	if s.adminToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) == 1 {
		return protocol.RoleAdmin
	}
	return protocol.RoleGuest
}

// Login は顧客を認証し、セッショントークンを発行する
// 認証失敗時は customer.ErrInvalidCredentials を返し、状態は一切変更しない
func (s *AuthService) Login(ctx context.Context, email, password string) (*customer.Customer, string, error) {
	c, err := s.customers.GetByEmail(email)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			return nil, "", customer.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("顧客の取得に失敗: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", customer.ErrInvalidCredentials
	}

	token := s.createSession(c.ID)
	logger.Info("ログイン成功", zap.String("customer_id", c.ID))
	return c, token, nil
}

// Register は新規顧客をStandardランクで登録し、セッショントークンを発行する
// メールアドレス重複時は customer.ErrEmailAlreadyExists を返し、顧客は作成しない
// 成功時は管理者リスナーに顧客台帳を配信する
func (s *AuthService) Register(ctx context.Context, name, email, password, phone string) (*customer.Customer, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}

	c := customer.New(name, email, string(hash), phone)
	if err := s.customers.Create(c); err != nil {
		return nil, "", err
	}

	token := s.createSession(c.ID)
	logger.Info("顧客を登録", zap.String("customer_id", c.ID), zap.String("email", email))

	s.broadcastDirectory()
	return c, token, nil
}

// ResolveSession はセッショントークンを顧客IDに解決する
func (s *AuthService) ResolveSession(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	return id, ok
}

// ListCustomers は顧客台帳のコピーを返す
func (s *AuthService) ListCustomers(ctx context.Context) []*customer.Customer {
	return s.customers.List()
}

func (s *AuthService) createSession(customerID string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = customerID
	s.mu.Unlock()
	return token
}

func (s *AuthService) broadcastDirectory() {
	msg, err := protocol.New(protocol.TypeCustomersUpdate, protocol.CustomersUpdate{
		Customers: protocol.FromCustomers(s.customers.List()),
	})
	if err != nil {
		logger.Error("顧客台帳メッセージの生成に失敗", zap.Error(err))
		return
	}
	s.publisher.PublishAdmins(msg)
}
