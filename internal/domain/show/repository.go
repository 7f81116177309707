package show

// Repository は上映回リポジトリのインターフェース
type Repository interface {
	// Create は新しい上映回を登録する
	// 同一IDが既にある場合は ErrShowAlreadyExists を返す
	Create(s *Show) error

	// GetByID はIDから上映回を取得する
	GetByID(id string) (*Show, error)

	// List は上映回一覧を新しい順で返す
	List() []*Show
}
