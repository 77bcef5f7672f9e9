// internal/highlighter/languages.go
package highlighter

import (
	"embed"
	"sync"

	"github.com/gitlapse/gitlapse/internal/highlighter/lang"
	"github.com/gitlapse/gitlapse/internal/logger"

	csrc "github.com/smacker/go-tree-sitter/c"
	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
	tssrc "github.com/smacker/go-tree-sitter/typescript/typescript"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

// RegisterLanguages wires every supported grammar into the registry.
func RegisterLanguages() {
	registerOnce.Do(func() {
		lang.QueryFS = embeddedQueries

		lang.Register(&lang.Language{
			Name:           "Go",
			TreeSitterLang: gosrc.GetLanguage(),
			Extensions:     []string{".go"},
			QueryPath:      "go",
		})

		lang.Register(&lang.Language{
			Name:           "Python",
			TreeSitterLang: pythonsrc.GetLanguage(),
			Extensions:     []string{".py", ".pyw"},
			QueryPath:      "python",
		})

		lang.Register(&lang.Language{
			Name:           "JavaScript",
			TreeSitterLang: jssrc.GetLanguage(),
			Extensions:     []string{".js", ".jsx", ".mjs", ".cjs"},
			QueryPath:      "javascript",
		})

		lang.Register(&lang.Language{
			Name:           "TypeScript",
			TreeSitterLang: tssrc.GetLanguage(),
			Extensions:     []string{".ts", ".tsx"},
			QueryPath:      "typescript",
		})

		// The JavaScript parser handles JSON well enough for coloring.
		lang.Register(&lang.Language{
			Name:           "JSON",
			TreeSitterLang: jssrc.GetLanguage(),
			Extensions:     []string{".json", ".jsonc"},
			QueryPath:      "json",
		})

		lang.Register(&lang.Language{
			Name:           "Rust",
			TreeSitterLang: rustsrc.GetLanguage(),
			Extensions:     []string{".rs"},
			QueryPath:      "rust",
		})

		lang.Register(&lang.Language{
			Name:           "C",
			TreeSitterLang: csrc.GetLanguage(),
			Extensions:     []string{".c", ".h"},
			QueryPath:      "c",
		})

		logger.Debugf("Registered %d languages", len(lang.GetAll()))
	})
}
