package models

// MasterPasswordID is the primary key of the only master password record.
const MasterPasswordID = 1

// Credential представляет сохраненную учетную запись сайта.
// Password всегда хранится в зашифрованном виде (base64 от nonce+ciphertext+tag).
type Credential struct {
	Website  string `json:"website"`  // Website сайт, регистрозависимое точное совпадение
	Username string `json:"username"` // Username логин на сайте
	Password string `json:"password"` // Password ciphertext, никогда не plaintext
	ID       int64  `json:"id"`       // ID автоинкрементный идентификатор
}

// MasterPassword holds the salted bcrypt hash gating access to the vault.
type MasterPassword struct {
	PasswordHash []byte `json:"password_hash"`
	ID           int64  `json:"id"`
}

// Entry is a decrypted view of a Credential. It is only built in memory
// and is never persisted.
type Entry struct {
	Website  string
	Username string
	Password string
	ID       int64
}
