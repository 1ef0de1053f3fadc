package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvConfigFile はグローバル設定ファイルのパスを上書きする環境変数です。
const EnvConfigFile = "WORK_REPORT_CONFIG_FILE"

const (
	appDirName     = "git-work-reporter"
	configFileName = "config.json"
)

// DefaultStorePath はユーザーごとのグローバル設定ファイルのパスを返します。
func DefaultStorePath() (string, error) {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("ユーザー設定ディレクトリの取得に失敗しました: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Store はグローバル設定ファイル (フラットなキー/値の JSON) の読み書きを担当します。
// ファイルへの書き込みは明示的なセットアップ (--init) の時だけ行われます。
// 複数プロセスからの同時書き込みに対するロックは行いません。
type Store struct {
	path string
}

// NewStore は指定パスの Store を生成します。
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path は設定ファイルのパスです。
func (s *Store) Path() string {
	return s.path
}

// Exists は設定ファイルが存在するか判定します。
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

func (s *Store) open() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if !s.Exists() {
		return v, nil
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("グローバル設定ファイル %s の読み込みに失敗しました: %w", s.path, err)
	}
	return v, nil
}

// Load は設定ファイルを読み込み、フラットな Values として返します。
// ファイルが存在しない場合は空の Values を返します。
func (s *Store) Load() (Values, error) {
	v, err := s.open()
	if err != nil {
		return nil, err
	}
	values := Values{}
	for _, key := range v.AllKeys() {
		values[key] = v.GetString(key)
	}
	return values, nil
}

// Merge は answers を既存の設定に上書きマージして保存します。
// answers に含まれないキーは保持されます (全体の上書きは行いません)。
func (s *Store) Merge(answers map[string]any) error {
	v, err := s.open()
	if err != nil {
		return err
	}
	for key, value := range answers {
		v.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("設定ディレクトリの作成に失敗しました: %w", err)
	}
	// API キーを含むため所有者のみ読み書き可能にする
	v.SetConfigPermissions(0o600)
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("グローバル設定ファイル %s の書き込みに失敗しました: %w", s.path, err)
	}
	return nil
}

// Setting は表示用の 1 設定項目です。
type Setting struct {
	Key   string
	Value string
}

// Redacted は秘密情報を伏せ字にした設定一覧をキー順で返します。
// 秘密情報は省略せず、必ず伏せ字として表示します。
func Redacted(values Values) []Setting {
	settings := make([]Setting, 0, len(values))
	for _, key := range values.Keys() {
		value := values[key]
		if IsSecretKey(key) {
			value = MaskSecret(value)
		}
		settings = append(settings, Setting{Key: key, Value: value})
	}
	return settings
}
