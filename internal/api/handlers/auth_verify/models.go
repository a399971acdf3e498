package auth_verify

import "github.com/m04kA/QS-AppointmentService/internal/service/auth/models"

// VerifyRequest HTTP request model
type VerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
	Name  string `json:"name,omitempty"`
}

// VerifyResponse HTTP response model
// Токены дублируются в cookie, NeedsName подсказывает фронту показать форму имени
type VerifyResponse struct {
	OK        bool   `json:"ok"`
	NeedsName bool   `json:"needs_name"`
	Name      string `json:"name,omitempty"`
}

// FromResult конвертирует результат сервиса в HTTP response
func FromResult(res *models.VerifyResult) VerifyResponse {
	resp := VerifyResponse{OK: true, NeedsName: res.NeedsName}
	if res.User.Name != nil {
		resp.Name = *res.User.Name
	}
	return resp
}
