package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	sitterjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	sittertypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	ErrFileExtNotFound        = errors.New("file extension not found")
	ErrLanguageParserNotFound = errors.New("language parser not found")
	ErrUnSupportedLanguage    = errors.New("unsupported language")
)

// Language represents a source language the analyzer can parse.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
)

// TreeSitterParser holds the grammar configuration for a language
type TreeSitterParser struct {
	Language       Language
	SitterLanguage func() *sitter.Language
	SupportedExts  []string
}

// treeSitterParsers 定义了所有支持的语言配置
var treeSitterParsers = []*TreeSitterParser{
	{
		Language: JavaScript,
		SitterLanguage: func() *sitter.Language {
			return sitter.NewLanguage(sitterjavascript.Language())
		},
		SupportedExts: []string{".js", ".jsx", ".mjs", ".cjs"},
	},
	{
		Language: TypeScript,
		SitterLanguage: func() *sitter.Language {
			return sitter.NewLanguage(sittertypescript.LanguageTypescript())
		},
		SupportedExts: []string{".ts", ".mts", ".cts"},
	},
}

// GetTreeSitterParsers 获取所有语言配置
func GetTreeSitterParsers() []*TreeSitterParser {
	return treeSitterParsers
}

func getSitterParserByExt(ext string) *TreeSitterParser {
	ext = strings.ToLower(ext)
	for _, tp := range treeSitterParsers {
		for _, supportedExt := range tp.SupportedExts {
			if supportedExt == ext {
				return tp
			}
		}
	}
	return nil
}

// InferLanguage 根据文件扩展名推断语言
func InferLanguage(path string) (Language, error) {
	tp, err := GetSitterParserByFilePath(path)
	if err != nil {
		return "", err
	}
	return tp.Language, nil
}

func GetSitterParserByFilePath(path string) (*TreeSitterParser, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, ErrFileExtNotFound
	}
	langConf := getSitterParserByExt(ext)
	if langConf == nil {
		return nil, ErrLanguageParserNotFound
	}
	return langConf, nil
}

func GetSitterParserByLanguage(language Language) (*TreeSitterParser, error) {
	if language == "" {
		return nil, fmt.Errorf("get tree_sitter parser by language: language is empty")
	}
	for _, parser := range treeSitterParsers {
		if parser.Language == language {
			return parser, nil
		}
	}
	return nil, ErrLanguageParserNotFound
}

// ToLanguage 校验并转换语言名称，大小写不敏感
func ToLanguage(language string) (Language, error) {
	if language == "" {
		return "", fmt.Errorf("language is empty")
	}
	for _, parser := range treeSitterParsers {
		if strings.EqualFold(string(parser.Language), language) {
			return parser.Language, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnSupportedLanguage, language)
}

func IsUnSupportedFileError(err error) bool {
	return errors.Is(err, ErrFileExtNotFound) ||
		errors.Is(err, ErrLanguageParserNotFound) ||
		errors.Is(err, ErrUnSupportedLanguage)
}

func GetAllSupportedLanguages() []Language {
	var languages []Language
	for _, parser := range treeSitterParsers {
		languages = append(languages, parser.Language)
	}
	return languages
}
