package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/middleware"
	"github.com/telerehab/dashboard-api/model"
	"github.com/telerehab/dashboard-api/service"
	"github.com/telerehab/dashboard-api/util"
)

func getThemeManagerOrRespond(c *gin.Context) (*service.ThemeManager, bool) {
	m := middleware.GetThemeManager(c)
	if m == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Preference store not available",
			Err: fmt.Errorf("theme manager is nil"),
		})
		return nil, false
	}
	return m, true
}

// GetPreferences godoc
// @Summary      Read presentation preferences
// @Description  Resolved color theme (with style tokens), mode, and language
// @Tags         Preferences
// @Produce      json
// @Success      200 {object} util.APIResponse{data=object} "Preferences resolved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /preferences [get]
func GetPreferences(c *gin.Context) {
	themes, ok := getThemeManagerOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	name, tokens := themes.Initialize(ctx)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Preferences resolved",
		Data: map[string]interface{}{
			"colorTheme": name,
			"tokens":     tokens,
			"theme":      themes.Mode(ctx),
			"language":   themes.Language(ctx),
			"palettes":   model.PaletteNames(),
		},
	})
}

type setThemeRequest struct {
	ColorTheme string `json:"colorTheme" example:"teal"`
	Theme      string `json:"theme" example:"dark"`
}

// SetTheme godoc
// @Summary      Change the color theme
// @Description  Persist and apply a palette selection; unknown names are rejected
// @Tags         Preferences
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body setThemeRequest true "Theme selection"
// @Success      200 {object} util.APIResponse{data=object} "Theme updated"
// @Failure      400 {object} util.APIResponse "Unknown palette or mode"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /preferences/theme [put]
func SetTheme(c *gin.Context) {
	var req setThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	themes, ok := getThemeManagerOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if req.ColorTheme != "" && !themes.SetCurrent(ctx, req.ColorTheme) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown palette",
			Err: fmt.Errorf("palette %q is not recognized", req.ColorTheme),
		})
		return
	}
	if req.Theme != "" && !themes.SetMode(ctx, req.Theme) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown mode",
			Err: fmt.Errorf("mode %q is not recognized", req.Theme),
		})
		return
	}

	name := themes.Current(ctx)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Theme updated",
		Data: map[string]interface{}{
			"colorTheme": name,
			"tokens":     themes.Apply(name),
			"theme":      themes.Mode(ctx),
		},
	})
}

type setLanguageRequest struct {
	Language string `json:"language" example:"hi"`
}

// SetLanguage godoc
// @Summary      Change the UI language
// @Description  Persist the language used for display-name resolution
// @Tags         Preferences
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body setLanguageRequest true "Language selection"
// @Success      200 {object} util.APIResponse{data=object} "Language updated"
// @Failure      400 {object} util.APIResponse "Unknown language"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /preferences/language [put]
func SetLanguage(c *gin.Context) {
	var req setLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	themes, ok := getThemeManagerOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if !themes.SetLanguage(ctx, req.Language) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown language",
			Err: fmt.Errorf("language %q is not recognized", req.Language),
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Language updated",
		Data: map[string]interface{}{
			"language": themes.Language(ctx),
		},
	})
}
