package users

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/larlarbooks/larlar/pkg/auth"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const minPhoneLength = 8

type handler struct {
	userService *Service
}

type profileResponse struct {
	Success bool         `json:"success"`
	Profile *models.User `json:"profile"`
	Stats   *Stats       `json:"stats,omitempty"`
}

func (h *handler) register(c echo.Context) error {
	ctx := c.Request().Context()

	params := RegisterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Register(ctx, RegisterOptions(params))
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("user registered", logger.Data{"user_id": user.ID})

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User created successfully",
		"user":    user,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	rc := auth.RequestContextFrom(c)

	user, err := h.userService.Retrieve(ctx, rc.UserID)
	if err != nil {
		return err
	}

	stats, err := h.userService.Stats(ctx, user.ID)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, profileResponse{true, user, stats}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	rc := auth.RequestContextFrom(c)

	params := UpdateProfilePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, rc.UserID)
	if err != nil {
		return err
	}

	opts := UpdateOptions{Columns: []string{}}

	if params.FullName.Set {
		if params.FullName.Null || strings.TrimSpace(params.FullName.Value) == "" {
			return errcodes.ValidationError(`"fullName" can't be blank`)
		}
		user.FullName = strings.TrimSpace(params.FullName.Value)
		opts.Columns = append(opts.Columns, "full_name")
	}
	if params.Username.Set {
		user.Username = params.Username.Ptr()
		opts.Columns = append(opts.Columns, "username")
	}
	if params.AvatarURL.Set {
		user.AvatarURL = params.AvatarURL.Ptr()
		opts.Columns = append(opts.Columns, "avatar_url")
	}

	if err := h.userService.Update(ctx, user, opts); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, profileResponse{Success: true, Profile: user}))
}

func (h *handler) updateEmail(c echo.Context) error {
	ctx := c.Request().Context()
	rc := auth.RequestContextFrom(c)

	params := UpdateEmailPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, rc.UserID)
	if err != nil {
		return err
	}

	if err := h.userService.UpdateEmail(ctx, user, params.Email); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, profileResponse{Success: true, Profile: user}))
}

func (h *handler) updatePhone(c echo.Context) error {
	ctx := c.Request().Context()
	rc := auth.RequestContextFrom(c)

	params := UpdatePhonePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	phone := strings.TrimSpace(params.Phone)
	if len(phone) < minPhoneLength {
		return errcodes.ValidationError("Invalid phone number")
	}

	user, err := h.userService.Retrieve(ctx, rc.UserID)
	if err != nil {
		return err
	}

	user.Phone = &phone
	if err := h.userService.Update(ctx, user, UpdateOptions{Columns: []string{"phone"}}); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, profileResponse{Success: true, Profile: user}))
}
