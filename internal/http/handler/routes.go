package handler

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"perfserver/internal/model"
	"perfserver/internal/service"
)

// RegisterRoutes attaches the test endpoints and probes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, svc service.EndpointService) {
	app.Get("/health", Readiness())
	app.Get("/healthz", LivenessProbe())

	app.Get("/fast", Fast(svc))
	app.Get("/slow", Slow(svc))
	app.Get("/another-fast", AnotherFast(svc))
	app.Post("/fast-post", FastPost(svc))
	app.Put("/fast-put", FastPut(svc))
	app.Delete("/slow-delete", SlowDelete(svc))
}

// Readiness reports that the server accepts traffic.
//
// @Summary Readiness probe
// @Tags probes
// @Produce json
// @Success 200 {object} model.Health
// @Router /health [get]
func Readiness() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(model.Health{Status: "healthy"})
	}
}

// LivenessProbe answers 200 with an empty body.
//
// @Summary Liveness probe
// @Tags probes
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Fast godoc
//
// @Summary Fast endpoint
// @Tags endpoints
// @Produce plain
// @Success 200 {string} string "This is a fast endpoint!"
// @Router /fast [get]
func Fast(svc service.EndpointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(svc.Fast())
	}
}

// Slow godoc
//
// @Summary Slow endpoint, answers after the configured delay
// @Tags endpoints
// @Produce plain
// @Success 200 {string} string "This is a slow endpoint!"
// @Router /slow [get]
func Slow(svc service.EndpointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msg, err := svc.Slow(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.SendString(msg)
	}
}

// AnotherFast godoc
//
// @Summary Another fast endpoint
// @Tags endpoints
// @Produce plain
// @Success 200 {string} string "This is another fast endpoint!"
// @Router /another-fast [get]
func AnotherFast(svc service.EndpointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(svc.AnotherFast())
	}
}

// FastPost godoc
//
// @Summary Echo the JSON body
// @Tags endpoints
// @Accept json
// @Produce json
// @Success 200 {object} model.EchoResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /fast-post [post]
func FastPost(svc service.EndpointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.FastPost(jsonBody(c))
		if err != nil {
			return serviceError(c, err)
		}
		return sendJSON(c, res)
	}
}

// FastPut godoc
//
// @Summary Echo the JSON body
// @Tags endpoints
// @Accept json
// @Produce json
// @Success 200 {object} model.EchoResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /fast-put [put]
func FastPut(svc service.EndpointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.FastPut(jsonBody(c))
		if err != nil {
			return serviceError(c, err)
		}
		return sendJSON(c, res)
	}
}

// SlowDelete godoc
//
// @Summary Echo the JSON body after the configured delay
// @Tags endpoints
// @Accept json
// @Produce json
// @Success 200 {object} model.EchoResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /slow-delete [delete]
func SlowDelete(svc service.EndpointService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.SlowDelete(c.UserContext(), jsonBody(c))
		if err != nil {
			return serviceError(c, err)
		}
		return sendJSON(c, res)
	}
}

// jsonBody returns the raw body when the request declares a JSON content type.
// Bodies of any other type are ignored and echoed as an empty object.
func jsonBody(c *fiber.Ctx) []byte {
	if !c.Is("json") {
		return nil
	}
	return c.Body()
}

// sendJSON encodes v without HTML escaping so echoed strings keep their original characters.
func sendJSON(c *fiber.Ctx, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	c.Type("json")
	return c.Send(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
