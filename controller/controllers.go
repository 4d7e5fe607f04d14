package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dilshat/sms-gateway/log"
	"github.com/dilshat/sms-gateway/provider"
	"github.com/dilshat/sms-gateway/service"
	"github.com/dilshat/sms-gateway/service/dto"
	"github.com/labstack/echo/v4"
)

// SendSms godoc
// @Summary Send sms
// @Description Sends an sms through the named simulated provider
// @Accept json
// @Produce json
// @Param provider path string true "Provider name"
// @Param sms body object true "Provider-native payload"
// @Success 201 {object} model.Message
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /api/sms/send/{provider} [post]
func GetSendSmsFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := map[string]interface{}{}
		if err := c.Bind(&raw); err != nil {
			return err
		}

		msg, err := srv.SendMessage(c.Param("provider"), raw)
		if err != nil {
			switch e := err.(type) {
			case *provider.NotFoundError:
				return c.JSON(http.StatusNotFound, dto.Error{
					Error:              fmt.Sprintf("Unknown provider '%s'", e.Name),
					SupportedProviders: e.Supported,
				})
			case *provider.ValidationError:
				return c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
			default:
				log.Error.Println(err)
				return c.String(http.StatusInternalServerError, "System malfunction. Please, try later")
			}
		}

		return c.JSON(http.StatusCreated, msg)
	}
}

// GetSms godoc
// @Summary Get sms
// @Description Returns a stored sms by id
// @Produce json
// @Param id path string true "Message id"
// @Success 200 {object} model.Message
// @Failure 404 "error description"
// @Router /api/sms/{id} [get]
func GetSmsFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		msg, err := srv.GetMessage(id)
		if err != nil {
			if err.Error() == "not found" {
				return c.String(http.StatusNotFound, "Message not found "+id)
			}
			log.Error.Println(err)
			return c.String(http.StatusInternalServerError, "System malfunction. Please, try later")
		}

		return c.JSON(http.StatusOK, msg)
	}
}

// ListSms godoc
// @Summary List sms
// @Description Lists stored sms newest first
// @Produce json
// @Param provider query string false "Filter by provider"
// @Param limit query int false "Max records, capped at 500"
// @Success 200 {array} model.Message
// @Router /api/sms [get]
func GetListSmsFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := new(dto.Filter)
		if err := c.Bind(filter); err != nil {
			return err
		}

		messages, err := srv.ListMessages(*filter)
		if err != nil {
			log.Error.Println(err)
			return c.String(http.StatusInternalServerError, "System malfunction. Please, try later")
		}

		return c.JSON(http.StatusOK, messages)
	}
}

// SimulateDelivery godoc
// @Summary Simulate delivery
// @Description Transitions every queued sms to delivered
// @Produce json
// @Success 200 {object} dto.Updated
// @Router /api/sms/simulate-delivery [post]
func GetSimulateDeliveryFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		updated, err := srv.MarkQueuedDelivered()
		if err != nil {
			log.Error.Println(err)
			return c.String(http.StatusInternalServerError, "System malfunction. Please, try later")
		}

		return c.JSON(http.StatusOK, dto.Updated{Updated: updated})
	}
}

// Events godoc
// @Summary Live events
// @Description Streams new sms events over server-sent events
// @Produce text/event-stream
// @Success 200 "event stream"
// @Router /api/events [get]
func GetEventsFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set("Cache-Control", "no-cache")
		c.Response().Header().Set("Connection", "keep-alive")
		c.Response().WriteHeader(http.StatusOK)

		writeSseEvent(c.Response(), "ready", `{"ok":true}`)
		c.Response().Flush()

		sub := srv.Subscribe()
		defer srv.Unsubscribe(sub)

		for {
			select {
			case <-c.Request().Context().Done():
				return nil
			case ev, ok := <-sub.C:
				if !ok {
					//dropped by the broker
					return nil
				}
				data, err := json.Marshal(ev)
				if err != nil {
					log.Error.Println(err)
					continue
				}
				writeSseEvent(c.Response(), ev.Event, string(data))
				c.Response().Flush()
			}
		}
	}
}

// Health godoc
// @Summary Health
// @Description Reports liveness and the supported providers
// @Produce json
// @Success 200 {object} dto.Health
// @Router /health [get]
func GetHealthFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, dto.Health{Ok: true, Providers: srv.SupportedProviders()})
	}
}

func writeSseEvent(w *echo.Response, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
