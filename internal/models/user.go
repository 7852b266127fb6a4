package models

// User, kayıtlı kullanıcıyı temsil eder. PasswordHash JSON çıktısına yazılmaz.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// RegisterForm, kayıt formu verileri
type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginForm, giriş formu verileri
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}
