package filestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrFileType 扩展名或 MIME 不在白名单
var ErrFileType = errors.New("only PDF, DOC, DOCX, JPEG, JPG, PNG files are allowed")

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

var allowedExt = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {},
	".jpeg": {}, ".jpg": {}, ".png": {},
}

var mimeTokens = []string{"pdf", "doc", "docx", "jpeg", "jpg", "png"}

// StoredFile 已落盘文件；Path 为相对路径，根在 uploads 目录
type StoredFile struct {
	Name string // 原始文件名
	Path string
	MIME string
}

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

func allowed(ext, mime string) bool {
	if _, ok := allowedExt[ext]; !ok {
		return false
	}
	mime = strings.ToLower(mime)
	for _, t := range mimeTokens {
		if strings.Contains(mime, t) {
			return true
		}
	}
	return false
}

// SaveUpload 校验类型后按唯一名落盘
func (s *Store) SaveUpload(fh *multipart.FileHeader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mime := fh.Header.Get("Content-Type")
	if !allowed(ext, mime) {
		return nil, ErrFileType
	}

	name := fmt.Sprintf("file-%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
	dst := filepath.Join(s.root, name)

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, err
	}
	return &StoredFile{Name: fh.Filename, Path: dst, MIME: mime}, nil
}

// SaveGeneratedPNG 解码 base64 data URL 并落盘为 PNG
func (s *Store) SaveGeneratedPNG(dataURL string) (*StoredFile, error) {
	raw := dataURLPrefix.ReplaceAllString(dataURL, "")
	buf, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}

	name := fmt.Sprintf("generated-notice-%d.png", time.Now().UnixMilli())
	dst := filepath.Join(s.root, name)
	if err := os.WriteFile(dst, buf, 0o644); err != nil {
		return nil, err
	}
	return &StoredFile{Name: name, Path: dst, MIME: "image/png"}, nil
}

// Remove 尽力删除；文件不存在不算错
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(relPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) Abs(relPath string) (string, error) {
	return filepath.Abs(relPath)
}

func (s *Store) Exists(relPath string) bool {
	_, err := os.Stat(relPath)
	return err == nil
}
