package request_models

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=3,max=50"`
	Avatar      *string `json:"avatar" binding:"omitempty,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=35"`
	Country     *string `json:"country" binding:"omitempty,max=50"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member moderator"`
}
