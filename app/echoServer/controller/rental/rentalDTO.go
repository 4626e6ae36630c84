package rental

type CreateTransactionReq struct {
	BookID   int64  `json:"book_id" validate:"required,gt=0"`
	UserName string `json:"user_name" validate:"required"`
	Mode     string `json:"mode" validate:"required,oneof=purchase rent"`
	Duration string `json:"duration"`
}
