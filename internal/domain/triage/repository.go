package triage

// SessionRepository 分诊会话仓储接口，每个会话一个文档
type SessionRepository interface {
	// Create 写入新会话
	Create(session *Session) error

	// Get 读取会话，不存在时返回 ErrSessionNotFound
	Get(sessionID string) (*Session, error)

	// Update 在该会话的写锁内执行读-改-写，不存在时返回 ErrSessionNotFound 且不写入
	Update(sessionID string, fn func(*Session) error) (*Session, error)

	// List 扫描全部会话，userID 为空表示不过滤；无法读取的文档被跳过
	List(userID string) []Session

	// Delete 删除会话，返回是否存在
	Delete(sessionID string) (bool, error)
}
