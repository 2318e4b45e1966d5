package account

import "errors"

var (
	// ErrUnknownAccount 邮箱与角色没有匹配的用户
	ErrUnknownAccount = errors.New("invalid email or role")

	// ErrWrongPassword 密码错误
	ErrWrongPassword = errors.New("invalid password")
)

// Role 用户角色
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// User creds.json 中的用户记录
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// Profile 返回给客户端的用户信息，不含密码
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Profile 去掉敏感字段
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Avatar: u.Avatar}
}

// Credentials creds.json 文档结构
type Credentials struct {
	Users []User `json:"users"`
}

// Authenticate 先按邮箱与角色匹配用户，再校验密码
func (c *Credentials) Authenticate(email, password string, role Role) (*User, error) {
	for i := range c.Users {
		u := &c.Users[i]
		if u.Email != email || u.Role != role {
			continue
		}
		if u.Password != password {
			return nil, ErrWrongPassword
		}
		return u, nil
	}
	return nil, ErrUnknownAccount
}
