// Package server exposes word lookups over HTTP.
package server

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"word-translate-backend/labels"
	"word-translate-backend/languages"
	"word-translate-backend/translator"
	"word-translate-backend/validation"
	"word-translate-backend/worddetails"
)

// maxBody caps the JSON body of a translate request.
const maxBody = 4 << 10

//go:embed templates/*.html
var templates embed.FS

type Resolver interface {
	Resolve(ctx context.Context, word string, lang string, set labels.Set) (*worddetails.Result, error)
}

type Notifier interface {
	Info(message string)
	Error(message string)
}

// Response holds either a result or an error message.
type Response struct {
	Result *worddetails.Result `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

type Server struct {
	validator  *validation.Validator
	translator translator.Translator
	resolver   Resolver
	notifier   Notifier
	logger     *log.Logger
}

func New(tr translator.Translator, resolver Resolver, notifier Notifier) *Server {
	return &Server{
		validator:  validation.New(),
		translator: tr,
		resolver:   resolver,
		notifier:   notifier,
		logger:     log.New(os.Stderr, "[server] ", log.LstdFlags),
	}
}

// Register installs templates and routes on router.
func (s *Server) Register(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))
	router.GET("/", s.page("login.html"))
	router.GET("/index", s.page("index.html"))
	router.POST("/translate", s.translate)
}

func (s *Server) page(name string) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		gctx.HTML(http.StatusOK, name, gin.H{"Languages": languages.Names()})
	}
}

func (s *Server) translate(gctx *gin.Context) {
	var req validation.Request
	gctx.Request.Body = http.MaxBytesReader(gctx.Writer, gctx.Request.Body, maxBody)
	if err := gctx.ShouldBindJSON(&req); err != nil {
		s.logger.Println("bad request body:", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			gctx.JSON(http.StatusOK, Response{Error: validation.WordTooLong})
			return
		}
		gctx.JSON(http.StatusOK, Response{Error: validation.MissingFields})
		return
	}
	code, err := s.validator.Validate(&req)
	if err != nil {
		gctx.JSON(http.StatusOK, Response{Error: err.Error()})
		return
	}

	ctx := gctx.Request.Context()
	set, err := labels.Translate(ctx, s.translator, labels.English(), code)
	if err != nil {
		s.notifier.Info("labels for " + code + " fall back to english: " + err.Error())
	}
	result, err := s.resolver.Resolve(ctx, req.Word, code, set)
	if err != nil {
		s.notifier.Error(req.Word + " (to " + code + ") " + err.Error())
		gctx.JSON(http.StatusOK, Response{Error: err.Error()})
		return
	}
	gctx.JSON(http.StatusOK, Response{Result: result})
}
