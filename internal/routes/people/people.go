package routesPeople

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/ghaniswara/people-swipe/internal/entity"
	"github.com/ghaniswara/people-swipe/internal/middleware"
	"github.com/ghaniswara/people-swipe/internal/usecase/feed"
	"github.com/ghaniswara/people-swipe/internal/usecase/reaction"
	"github.com/ghaniswara/people-swipe/pkg/http_util"
	"github.com/labstack/echo"
)

// ListHandler serves GET /people?page=&size=&lat=&lng=. Unparseable values
// fall back to their defaults rather than failing the request.
func ListHandler(c echo.Context, feedCase feed.IFeedUseCase) error {
	request := entity.FeedRequest{
		Page:   queryInt(c, "page", entity.DefaultPage),
		Size:   queryInt(c, "size", entity.DefaultPageSize),
		Origin: entity.NewOrigin(queryFloat(c, "lat"), queryFloat(c, "lng")),
	}

	page, err := feedCase.GetPeoplePage(c.Request().Context(), request)

	if err != nil {
		return encodeError(c, err, "failed to get people")
	}

	return http_util.Encode(c, http.StatusOK, page)
}

func LikeHandler(c echo.Context, reactionCase reaction.IReactionUseCase) error {
	deviceID, ok := middleware.DeviceIDFromContext(c)
	if !ok {
		return http_util.EncodeMessage(c, http.StatusUnprocessableEntity, middleware.DeviceIDHeader+" required")
	}

	personID, ok := personIDParam(c)
	if !ok {
		return http_util.EncodeMessage(c, http.StatusNotFound, "person not found")
	}

	resp, err := reactionCase.Like(c.Request().Context(), personID, deviceID)

	if err != nil {
		return encodeError(c, err, "failed to like")
	}

	return http_util.Encode(c, http.StatusOK, resp)
}

func DislikeHandler(c echo.Context, reactionCase reaction.IReactionUseCase) error {
	deviceID, ok := middleware.DeviceIDFromContext(c)
	if !ok {
		return http_util.EncodeMessage(c, http.StatusUnprocessableEntity, middleware.DeviceIDHeader+" required")
	}

	personID, ok := personIDParam(c)
	if !ok {
		return http_util.EncodeMessage(c, http.StatusNotFound, "person not found")
	}

	resp, err := reactionCase.Dislike(c.Request().Context(), personID, deviceID)

	if err != nil {
		return encodeError(c, err, "failed to dislike")
	}

	return http_util.Encode(c, http.StatusOK, resp)
}

func LikedHandler(c echo.Context, reactionCase reaction.IReactionUseCase) error {
	deviceID, ok := middleware.DeviceIDFromContext(c)
	if !ok {
		return http_util.EncodeMessage(c, http.StatusUnprocessableEntity, middleware.DeviceIDHeader+" required")
	}

	resp, err := reactionCase.LikedPeople(c.Request().Context(), deviceID)

	if err != nil {
		return encodeError(c, err, "failed to get liked people")
	}

	return http_util.Encode(c, http.StatusOK, resp)
}

// personIDParam parses the :id path segment. An id that is not a positive
// integer cannot name a person.
func personIDParam(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}

func encodeError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		return http_util.EncodeMessage(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		return http_util.EncodeMessage(c, http.StatusNotFound, "person not found")
	default:
		log.Printf("%s %s: %s", c.Request().Method, c.Request().URL.Path, err)
		return http_util.EncodeMessage(c, http.StatusInternalServerError, fallback)
	}
}

func queryInt(c echo.Context, name string, defaultValue int) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return defaultValue
	}
	return value
}

func queryFloat(c echo.Context, name string) *float64 {
	value, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return nil
	}
	return &value
}
