package email

import (
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"
)

//go:embed templates
var embedded embed.FS

// ErrTemplateDoesNotExist - шаблона с таким префиксом нет
var ErrTemplateDoesNotExist = errors.New("template does not exist")

// TemplateManager хранит html-шаблоны (с экранированием) и txt-шаблоны
// под именами вида "users/emails/new_user_password".
type TemplateManager struct {
	html  map[string]*htmltemplate.Template
	text  map[string]*texttemplate.Template
	mutex sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		html: make(map[string]*htmltemplate.Template),
		text: make(map[string]*texttemplate.Template),
	}
}

// NewDefaultTemplateManager загружает встроенные шаблоны и, если задан dir,
// шаблоны с диска поверх них.
func NewDefaultTemplateManager(dir string) (*TemplateManager, error) {
	tm := NewTemplateManager()
	root, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, err
	}
	if err := tm.LoadFS(root); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := tm.LoadFS(os.DirFS(dir)); err != nil {
			return nil, fmt.Errorf("load templates from %s: %w", dir, err)
		}
	}
	return tm, nil
}

// LoadFS загружает все *.html и *.txt из fsys
func (tm *TemplateManager) LoadFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if ext != ".html" && ext != ".txt" {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}
		name := strings.TrimSuffix(p, ext)
		if ext == ".html" {
			return tm.AddHTML(name, string(content))
		}
		return tm.AddText(name, string(content))
	})
}

func (tm *TemplateManager) AddHTML(name, src string) error {
	tpl, err := htmltemplate.New(name).Option("missingkey=zero").Parse(src)
	if err != nil {
		return fmt.Errorf("failed to parse template %s.html: %w", name, err)
	}
	tm.mutex.Lock()
	tm.html[name] = tpl
	tm.mutex.Unlock()
	return nil
}

func (tm *TemplateManager) AddText(name, src string) error {
	tpl, err := texttemplate.New(name).Option("missingkey=zero").Parse(src)
	if err != nil {
		return fmt.Errorf("failed to parse template %s.txt: %w", name, err)
	}
	tm.mutex.Lock()
	tm.text[name] = tpl
	tm.mutex.Unlock()
	return nil
}

func (tm *TemplateManager) RenderHTML(prefix string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, ok := tm.html[prefix]
	tm.mutex.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s.html", ErrTemplateDoesNotExist, prefix)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) RenderText(prefix string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, ok := tm.text[prefix]
	tm.mutex.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s.txt", ErrTemplateDoesNotExist, prefix)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// TemplateNames возвращает имена загруженных шаблонов с расширением
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.html)+len(tm.text))
	for name := range tm.html {
		names = append(names, name+".html")
	}
	for name := range tm.text {
		names = append(names, name+".txt")
	}
	return names
}
