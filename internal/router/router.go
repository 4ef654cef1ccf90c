package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"profilehub/internal/auth"
	"profilehub/internal/config"
	apierrors "profilehub/internal/errors"
	"profilehub/internal/handler"
)

// TokenHeader is the request header carrying the auth token.
const TokenHeader = "x-auth-token"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	profileHandler *handler.ProfileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authGate := AuthGate(cfg.JWTSecret)

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.Register)
	api.POST("/auth", authHandler.Login)
	api.GET("/profile", profileHandler.List)
	api.GET("/profile/user/:userId", profileHandler.GetByUser)

	// Routes requiring a valid token
	api.GET("/auth", authHandler.Me, authGate)
	api.GET("/profile/me", profileHandler.Me, authGate)
	api.POST("/profile", profileHandler.Upsert, authGate)
	api.DELETE("/profile", profileHandler.Delete, authGate)
}

// AuthGate returns middleware that verifies the token from the x-auth-token
// header and attaches the resolved claims to the request context. A missing
// token and an invalid token both reject with 401 but carry distinct messages.
func AuthGate(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + TokenHeader,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractionErr *echojwt.TokenExtractionError
			if errors.As(err, &extractionErr) {
				return c.JSON(http.StatusUnauthorized, apierrors.New("No token, authorization denied"))
			}
			return c.JSON(http.StatusUnauthorized, apierrors.New("Token is not valid"))
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
