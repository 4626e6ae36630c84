package book

type CreateBookReq struct {
	Title    string   `json:"title" validate:"required"`
	Author   string   `json:"author" validate:"required"`
	Year     *int     `json:"year" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Status   string   `json:"status" validate:"omitempty,oneof=available unavailable sold"`
}

type UpdateBookReq struct {
	Title    *string  `json:"title"`
	Author   *string  `json:"author"`
	Year     *int     `json:"year"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Status   *string  `json:"status" validate:"omitempty,oneof=available unavailable sold"`
}
