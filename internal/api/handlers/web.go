// backend/internal/api/handlers/web.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/valora-earth/backend/internal/models"
	"github.com/valora-earth/backend/internal/repository"
	"github.com/valora-earth/backend/internal/session"
	"github.com/valora-earth/backend/pkg/utils"
	"gorm.io/gorm"
)

const sessionCookie = "ve_session"

// Questionnaire step -> inquiry field mapping (steps 1..4).
var stepFields = map[int]string{
	1: "current_property",
	2: "property_goals",
	3: "investment_capacity",
	4: "preferences_concerns",
}

var stepQuestions = map[int]string{
	1: "Describe your property as it is today.",
	2: "What are your goals for the property?",
	3: "What is your investment capacity and timeline?",
	4: "Any preferences or concerns we should know about?",
}

// WebHandler serves the entry form, questionnaire flow, and result pages.
type WebHandler struct {
	sessions    session.Store
	repoManager *repository.RepositoryManager
	logger      *logrus.Logger
}

func NewWebHandler(
	sessions session.Store,
	repoManager *repository.RepositoryManager,
	logger *logrus.Logger,
) *WebHandler {
	return &WebHandler{
		sessions:    sessions,
		repoManager: repoManager,
		logger:      logger,
	}
}

// ensureSessionID returns the request's session ID, minting a cookie when the
// browser has none.
func ensureSessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && utils.ValidSessionID(id) {
		return id
	}
	id := utils.NewSessionID()
	c.SetCookie(sessionCookie, id, 3600, "/", "", secureRequest(c), true)
	return id
}

// secureRequest reports whether the request arrived over TLS, either directly
// or through a terminating proxy. The session cookie is only marked Secure on
// such requests so plain-HTTP development setups keep working.
func secureRequest(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}

// Index renders the entry form and accepts its submission.
func (h *WebHandler) Index(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.HTML(http.StatusOK, "index.tmpl", gin.H{
			"Message": c.Query("message"),
			"Form":    models.InitialDataForm{},
		})
		return
	}

	var form models.InitialDataForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderIndexError(c, "Invalid form submission.", form)
		return
	}

	lotSizeText := strings.TrimSpace(form.LotSize)
	region := strings.TrimSpace(form.Region)
	unit := strings.TrimSpace(form.LotSizeUnit)
	if unit == "" {
		unit = models.UnitAcres
	}

	if lotSizeText == "" || region == "" {
		h.renderIndexError(c, "Lot size and region are required fields.", form)
		return
	}

	lotSize, err := strconv.ParseFloat(lotSizeText, 64)
	if err != nil || lotSize <= 0 {
		h.renderIndexError(c, "Please enter a valid lot size greater than 0.", form)
		return
	}

	sessionID := ensureSessionID(c)
	state := &session.State{
		Initial: &session.InitialData{
			LotSize:     lotSize,
			LotSizeUnit: unit,
			Region:      region,
		},
	}

	if err := h.sessions.Save(c.Request.Context(), sessionID, state); err != nil {
		h.logger.WithError(err).Error("Failed to save session state")
		h.renderIndexError(c, "An error occurred. Please try again.", form)
		return
	}

	c.Redirect(http.StatusFound, "/estimate")
}

func (h *WebHandler) renderIndexError(c *gin.Context, message string, form models.InitialDataForm) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Error": message,
		"Form":  form,
	})
}

// Questionnaire drives the 4-step flow. GET renders the current step; POST
// stores the answer and advances, creating the inquiry after step 4.
func (h *WebHandler) Questionnaire(c *gin.Context) {
	sessionID := ensureSessionID(c)
	state, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load session state")
		c.Redirect(http.StatusFound, "/")
		return
	}

	if state.Initial == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	step := clampStep(c.Query("step"))

	if c.Request.Method == http.MethodGet {
		h.renderStep(c, step, state, "")
		return
	}

	answer := strings.TrimSpace(c.PostForm("answer"))
	if answer == "" {
		h.renderStep(c, step, state, "Please provide an answer before continuing.")
		return
	}

	setAnswer(&state.Answers, step, answer)

	if step < 4 {
		if err := h.sessions.Save(c.Request.Context(), sessionID, state); err != nil {
			h.logger.WithError(err).Error("Failed to save session state")
			h.renderStep(c, step, state, "An error occurred. Please try again.")
			return
		}
		c.Redirect(http.StatusFound, "/estimate?step="+strconv.Itoa(step+1))
		return
	}

	inquiry := &models.PropertyInquiry{
		Address:             "Property in " + state.Initial.Region,
		LotSize:             state.Initial.LotSize,
		LotSizeUnit:         state.Initial.LotSizeUnit,
		CurrentProperty:     state.Answers.CurrentProperty,
		PropertyGoals:       state.Answers.PropertyGoals,
		InvestmentCapacity:  state.Answers.InvestmentCapacity,
		PreferencesConcerns: state.Answers.PreferencesConcerns,
		Region:              state.Initial.Region,
	}

	if err := h.repoManager.Inquiry.Create(inquiry); err != nil {
		h.logger.WithError(err).Error("Failed to create property inquiry")
		h.renderStep(c, step, state, "Error processing estimate: "+err.Error())
		return
	}

	state.InquiryID = inquiry.ID
	if err := h.sessions.Save(c.Request.Context(), sessionID, state); err != nil {
		h.logger.WithError(err).WithField("inquiry_id", inquiry.ID).Error("Failed to save session state")
	}

	h.logger.WithFields(logrus.Fields{
		"inquiry_id": inquiry.ID,
		"region":     inquiry.Region,
	}).Info("Property inquiry created")

	c.Redirect(http.StatusFound, "/loading-estimate")
}

func (h *WebHandler) renderStep(c *gin.Context, step int, state *session.State, errMsg string) {
	c.HTML(http.StatusOK, "questionnaire.tmpl", gin.H{
		"Step":     step,
		"Question": stepQuestions[step],
		"Initial":  state.Initial,
		"Answers":  state.Answers,
		"Error":    errMsg,
	})
}

// LoadingScreen requires a created inquiry in the session.
func (h *WebHandler) LoadingScreen(c *gin.Context) {
	sessionID := ensureSessionID(c)
	state, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil || state.InquiryID == 0 {
		c.Redirect(http.StatusFound, "/?message=No estimate data found. Please start over.")
		return
	}

	c.HTML(http.StatusOK, "loading.tmpl", gin.H{
		"InquiryID": state.InquiryID,
	})
}

// Results renders a stored inquiry and its estimate when present.
func (h *WebHandler) Results(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("inquiry_id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/?message=Property inquiry not found.")
		return
	}

	inquiry, err := h.repoManager.Inquiry.GetWithEstimate(uint(id))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.logger.WithError(err).Error("Failed to load inquiry")
		}
		c.Redirect(http.StatusFound, "/?message=Property inquiry not found.")
		return
	}

	c.HTML(http.StatusOK, "results.tmpl", gin.H{
		"Inquiry":     inquiry,
		"Estimate":    inquiry.Estimate,
		"HasEstimate": inquiry.Estimate != nil,
	})
}

// DebugSession dumps the current session state. Registered only in debug builds.
func (h *WebHandler) DebugSession(c *gin.Context) {
	sessionID := ensureSessionID(c)
	state, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   sessionID,
		"initial_data": state.Initial,
		"answers":      state.Answers,
		"inquiry_id":   state.InquiryID,
	})
}

func clampStep(raw string) int {
	step, err := strconv.Atoi(raw)
	if err != nil || step < 1 || step > 4 {
		return 1
	}
	return step
}

func setAnswer(answers *session.Answers, step int, answer string) {
	switch stepFields[step] {
	case "current_property":
		answers.CurrentProperty = answer
	case "property_goals":
		answers.PropertyGoals = answer
	case "investment_capacity":
		answers.InvestmentCapacity = answer
	case "preferences_concerns":
		answers.PreferencesConcerns = answer
	}
}
