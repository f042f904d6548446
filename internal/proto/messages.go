package proto

type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (x *RegisterUserRequest) GetUsername() string {
	if x != nil {
		return x.Username
	}
	return ""
}

func (x *RegisterUserRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type RegisterUserResponse struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (x *LoginRequest) GetUsername() string {
	if x != nil {
		return x.Username
	}
	return ""
}

func (x *LoginRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

// LoginResponse carries the access token. ExpiresAt is Unix seconds.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	Message     string `json:"message"`
}

type WhoAmIRequest struct{}

// WhoAmIResponse describes the account behind the access token. CreatedAt is
// Unix seconds.
type WhoAmIResponse struct {
	UserId    int64  `json:"user_id"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"created_at"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
