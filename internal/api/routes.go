package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/excusegen/excuse-agent/internal/middleware"
	"github.com/excusegen/excuse-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.POST("/generate-excuse").
			To(handler.GenerateExcuse).
			Doc("Generate an excuse email draft").
			Metadata(restfulspec.KeyOpenAPITags, []string{"excuse"}).
			Reads(models.ExcuseRequest{}).
			Writes(models.ExcuseResponse{}).
			Returns(200, "OK", models.ExcuseResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)

	ops := new(restful.WebService)

	ops.
		Path("/").
		Produces(restful.MIME_JSON)

	// The form UI expects all four health aliases
	for _, path := range []string{"health", "healthz", "ready", "ping"} {
		ops.
			Route(ops.GET(path).
				To(handler.Health).
				Doc("Health check").
				Metadata(restfulspec.KeyOpenAPITags, []string{"ops"}).
				Writes(HealthResponse{}).
				Returns(200, "OK", HealthResponse{}))
	}

	ops.
		Route(ops.GET("metrics").
			To(handler.Metrics).
			Doc("Prometheus metrics").
			Metadata(restfulspec.KeyOpenAPITags, []string{"ops"}).
			Produces("text/plain"))

	ops.
		Route(ops.GET("debug").
			To(handler.Debug).
			Doc("Echo environment configuration").
			Metadata(restfulspec.KeyOpenAPITags, []string{"ops"}).
			Writes(DebugResponse{}).
			Returns(200, "OK", DebugResponse{}))

	ops.
		Route(ops.GET("/").
			To(handler.Index).
			Doc("Static form UI").
			Metadata(restfulspec.KeyOpenAPITags, []string{"ui"}).
			Produces("text/html"))

	container.Add(ops)
}
