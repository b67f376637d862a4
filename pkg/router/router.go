package router

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time with
// -ldflags "-X github.com/pocketledger/backend/pkg/router.version=<version>"
var version = "0.0.0"

// Options configure the router.
type Options struct {
	URL          *url.URL // Public base URL of the API
	AllowOrigins []string // CORS origins. CORS handling is disabled when empty
	Pprof        bool     // Serve pprof profiles under /debug/pprof
}

// Config sets up the router and its middlewares.
//
// The returned function unregisters the Prometheus metrics and must be
// called when the router is not used anymore.
func Config(o Options) (*gin.Engine, func(), error) {
	if o.URL == nil {
		return nil, func() {}, errors.New("the API URL must be set")
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(o.URL))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		httputil.NewError(c, http.StatusMethodNotAllowed, errors.New("this HTTP method is not allowed for the endpoint you called"))
	})
	r.NoRoute(func(c *gin.Context) {
		httputil.NewError(c, http.StatusNotFound, errors.New("there is no endpoint at this path"))
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(o.AllowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", o.AllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     o.AllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	if err := registerPrometheusMetrics(); err != nil {
		unregisterPrometheusMetrics()
		return nil, func() {}, err
	}

	if o.Pprof {
		pprof.Register(r)
	}

	log.Debug().Str("API Base URL", o.URL.String()).Str("Host", o.URL.Host).Str("Path", o.URL.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
func AttachRoutes(co controllers.Controller, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	co.RegisterHealthzRoutes(group.Group("/healthz"))

	// API v1 setup
	v1 := group.Group("/v1")
	{
		v1.GET("", GetV1)
		v1.OPTIONS("", OptionsV1)
	}

	co.RegisterExpenseRoutes(v1.Group("/expenses"))
	co.RegisterIncomeRoutes(v1.Group("/incomes"))
	co.RegisterBudgetRoutes(v1.Group("/budget"))
	co.RegisterAnalysisRoutes(v1.Group("/analysis"))
	co.RegisterReportRoutes(v1.Group("/reports"))
	co.RegisterImportRoutes(v1.Group("/import"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"` // Endpoint returning the health of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"` // Endpoint returning Prometheus metrics
	Version string `json:"version" example:"https://example.com/api/version"` // Endpoint returning the version of the backend
	V1      string `json:"v1" example:"https://example.com/api/v1"`           // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := httputil.BaseURL(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: url + "/healthz",
			Metrics: url + "/metrics",
			Version: url + "/version",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses"` // URL of the expense collection
	Incomes  string `json:"incomes" example:"https://example.com/api/v1/incomes"`   // URL of the income collection
	Budget   string `json:"budget" example:"https://example.com/api/v1/budget"`     // URL of the budget
	Analysis string `json:"analysis" example:"https://example.com/api/v1/analysis"` // Base URL of the analysis endpoints
	Reports  string `json:"reports" example:"https://example.com/api/v1/reports"`   // Base URL of the text reports
	Import   string `json:"import" example:"https://example.com/api/v1/import"`     // URL of the CSV import
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := httputil.BaseURL(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Expenses: url + "/v1/expenses",
			Incomes:  url + "/v1/incomes",
			Budget:   url + "/v1/budget",
			Analysis: url + "/v1/analysis",
			Reports:  url + "/v1/reports",
			Import:   url + "/v1/import",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
