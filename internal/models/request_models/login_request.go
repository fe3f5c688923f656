package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	DisplayName string  `json:"display_name" binding:"required,min=3,max=50"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8,max=72"`
	Phone       *string `json:"phone" binding:"omitempty,max=35"`
	Country     *string `json:"country" binding:"omitempty,max=50"`
}
