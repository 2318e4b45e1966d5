package account

// CredentialSource 静态账号来源
type CredentialSource interface {
	// Credentials 返回账号列表快照
	Credentials() (*Credentials, error)
}
