package gateway

import (
	"encoding/json"
	"os"
)

// tokenFile is the JSON shape persisted between runs.
type tokenFile struct {
	Token string `json:"token"`
}

// TokenStore persists the bearer token in a local JSON file so a restarted
// client can resume its session.
type TokenStore struct {
	path string
}

// NewTokenStore returns a TokenStore writing to the given path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load returns the persisted token, or "" if the file does not exist.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", err
	}
	return tf.Token, nil
}

// Save writes the token to disk, readable by the owner only.
func (s *TokenStore) Save(token string) error {
	data, err := json.Marshal(tokenFile{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the persisted token. A missing file is not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
