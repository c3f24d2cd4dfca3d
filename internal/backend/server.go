package backend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thenoetrevino/dragboard/internal/models"
)

// Store is the persistence surface the HTTP handlers need
type Store interface {
	ListBoards(ctx context.Context, owner string) ([]*models.Board, error)
	CreateBoard(ctx context.Context, owner, title string) (*models.Board, error)
	BoardLists(ctx context.Context, owner, boardID string) ([]*models.List, error)
	CreateList(ctx context.Context, owner, boardID, title string, order int) (*models.List, error)
	UpdateList(ctx context.Context, owner, listID string, upd ListUpdate) error
	DeleteList(ctx context.Context, owner, listID string) error
	CreateCard(ctx context.Context, owner, listID, title, description string, order int) (*models.Card, error)
	UpdateCard(ctx context.Context, owner, cardID string, upd CardUpdate) error
	DeleteCard(ctx context.Context, owner, cardID string) error
}

// Server bundles the echo instance serving the board API
type Server struct {
	echo     *echo.Echo
	store    Store
	logger   *slog.Logger
	requests *prometheus.CounterVec
}

// NewServer builds the HTTP server. reg receives the request counters and is
// exposed on /metrics when it is also a Gatherer; nil disables both.
func NewServer(store Store, auth *Auth, logger *slog.Logger, reg prometheus.Registerer) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newBodyValidator()
	e.Use(middleware.Recover())

	s := &Server{
		echo:   e,
		store:  store,
		logger: logger,
		requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "boardd",
			Name:      "http_requests_total",
			Help:      "API requests by route and status code.",
		}, []string{"route", "code"}),
	}
	e.Use(s.observe)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if g, ok := reg.(prometheus.Gatherer); ok {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api", auth.Middleware())
	api.GET("/boards", s.listBoards)
	api.POST("/boards", s.createBoard)
	api.GET("/boards/:id/lists", s.boardLists)
	api.POST("/lists", s.createList)
	api.PATCH("/lists/:id", s.updateList)
	api.DELETE("/lists/:id", s.deleteList)
	api.POST("/cards", s.createCard)
	api.PATCH("/cards/:id", s.updateCard)
	api.DELETE("/cards/:id", s.deleteCard)

	return s
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.logger.Info("boardd listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		code := c.Response().Status
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
		s.requests.WithLabelValues(c.Path(), strconv.Itoa(code)).Inc()
		return err
	}
}

// ============================================================================
// REQUEST BODIES
// ============================================================================

type boardBody struct {
	Title string `json:"title"`
}

type newListBody struct {
	Title   string `json:"title"`
	BoardID string `json:"board_id" validate:"required"`
	Order   int    `json:"order" validate:"min=0"`
}

type listPatchBody struct {
	Title *string `json:"title"`
	Order *int    `json:"order" validate:"omitempty,min=0"`
}

type newCardBody struct {
	Title       string `json:"title"`
	Description string `json:"description" validate:"max=4000"`
	ListID      string `json:"list_id" validate:"required"`
	Order       int    `json:"order" validate:"min=0"`
}

type cardPatchBody struct {
	ListID *string `json:"list_id" validate:"omitempty,min=1"`
	Order  *int    `json:"order" validate:"omitempty,min=0"`
	Title  *string `json:"title"`
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) listBoards(c echo.Context) error {
	boards, err := s.store.ListBoards(c.Request().Context(), ownerOf(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, boards)
}

func (s *Server) createBoard(c echo.Context) error {
	var body boardBody
	if err := c.Bind(&body); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	board, err := s.store.CreateBoard(c.Request().Context(), ownerOf(c), body.Title)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, board)
}

func (s *Server) boardLists(c echo.Context) error {
	lists, err := s.store.BoardLists(c.Request().Context(), ownerOf(c), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, lists)
}

func (s *Server) createList(c echo.Context) error {
	var body newListBody
	if err := c.Bind(&body); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&body); err != nil {
		return s.fail(c, err)
	}
	list, err := s.store.CreateList(c.Request().Context(), ownerOf(c), body.BoardID, body.Title, body.Order)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

func (s *Server) updateList(c echo.Context) error {
	var body listPatchBody
	if err := c.Bind(&body); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&body); err != nil {
		return s.fail(c, err)
	}
	upd := ListUpdate(body)
	if err := s.store.UpdateList(c.Request().Context(), ownerOf(c), c.Param("id"), upd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteList(c echo.Context) error {
	if err := s.store.DeleteList(c.Request().Context(), ownerOf(c), c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) createCard(c echo.Context) error {
	var body newCardBody
	if err := c.Bind(&body); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&body); err != nil {
		return s.fail(c, err)
	}
	card, err := s.store.CreateCard(c.Request().Context(), ownerOf(c), body.ListID, body.Title, body.Description, body.Order)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, card)
}

func (s *Server) updateCard(c echo.Context) error {
	var body cardPatchBody
	if err := c.Bind(&body); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&body); err != nil {
		return s.fail(c, err)
	}
	upd := CardUpdate(body)
	if err := s.store.UpdateCard(c.Request().Context(), ownerOf(c), c.Param("id"), upd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteCard(c echo.Context) error {
	if err := s.store.DeleteCard(c.Request().Context(), ownerOf(c), c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// fail maps repository errors onto status codes
func (s *Server) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.String(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return c.String(http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		return c.String(http.StatusInternalServerError, "internal error")
	}
}
