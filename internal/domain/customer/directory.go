package customer

// Directory は顧客台帳のインターフェース
// 取得系は常にコピーを返し、変更は Apply のコールバック内でのみ行う
type Directory interface {
	// Create は新しい顧客を登録する
	// 同一メールアドレスが既にある場合は ErrEmailAlreadyExists を返す
	Create(c *Customer) error

	// GetByID はIDから顧客のコピーを取得する
	GetByID(id string) (*Customer, error)

	// GetByEmail はメールアドレスから顧客のコピーを取得する
	GetByEmail(email string) (*Customer, error)

	// List は登録順で全顧客のコピーを返す
	List() []*Customer

	// Apply は顧客を台帳のロック下で変更する
	Apply(id string, fn func(c *Customer)) error
}
