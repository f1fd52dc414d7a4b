package delivery

import (
	"errors"
	"net/http"
	"strconv"

	authdelivery "replydesk-backend/internal/auth/delivery"
	emaildomain "replydesk-backend/internal/email/domain"
	emaildto "replydesk-backend/internal/email/dto"
	"replydesk-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// GET /api/gmail/profile
func (h *EmailHandler) GetProfile(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	profile, err := h.emailUsecase.GetProfile(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /api/gmail/messages?max_results=
func (h *EmailHandler) ListMessages(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	list, err := h.emailUsecase.ListMessages(c.Request.Context(), sess, queryCount(c, "max_results"))
	if err != nil {
		respondError(c, err)
		return
	}

	messages := list.Messages
	if messages == nil {
		messages = []emaildomain.MessageRef{}
	}
	c.JSON(http.StatusOK, emaildto.MessageListResponse{
		ResultSizeEstimate: list.ResultSizeEstimate,
		Messages:           messages,
	})
}

// GET /api/gmail/message/:id
func (h *EmailHandler) GetMessage(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	msg, err := h.emailUsecase.GetMessageMetadata(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// GET /api/gmail/message/:id/full
func (h *EmailHandler) GetMessageFull(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	msg, err := h.emailUsecase.GetMessageFull(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DELETE /api/gmail/message/:id
func (h *EmailHandler) DeleteMessage(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id := c.Param("id")
	if err := h.emailUsecase.DeleteMessage(c.Request.Context(), sess, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.DeleteResponse{Status: emaildto.StatusDeleted, ID: id})
}

// POST /api/gmail/send
func (h *EmailHandler) SendMessage(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req emaildto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := h.emailUsecase.SendMessage(c.Request.Context(), sess, req.To, req.Subject, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.SendEmailResponse{
		Status:   emaildto.StatusSent,
		ID:       result.ID,
		ThreadID: result.ThreadID,
		LabelIDs: result.LabelIDs,
	})
}

// GET /api/gmail/last?n=
func (h *EmailHandler) ListRecent(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	emails, err := h.emailUsecase.ListRecent(c.Request.Context(), sess, queryCount(c, "n"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails})
}

// GET /api/gmail/last_with_summaries?n=
func (h *EmailHandler) ListRecentWithSummaries(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	emails, err := h.emailUsecase.ListRecentWithSummaries(c.Request.Context(), sess, queryCount(c, "n"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails})
}

// GET /api/gmail/last_with_replies?n=
func (h *EmailHandler) ListRecentWithReplies(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	emails, err := h.emailUsecase.ListRecentWithReplies(c.Request.Context(), sess, queryCount(c, "n"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.ReplyCandidatesResponse{Emails: emails})
}

// POST /api/gmail/send_reply
func (h *EmailHandler) SendReply(c *gin.Context) {
	sess, ok := authdelivery.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req emaildto.SendReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	outcome, err := h.emailUsecase.SendReply(c.Request.Context(), sess, *req.EmailIndex, req.Body, req.Confirm)
	if err != nil {
		respondError(c, err)
		return
	}

	if !outcome.Confirmed() {
		c.JSON(http.StatusOK, emaildto.SendReplyResponse{
			Status:  emaildto.StatusNeedsConfirmation,
			Message: "Confirm sending reply to email #" + strconv.Itoa(outcome.Index),
			To:      outcome.To,
			Subject: outcome.Subject,
		})
		return
	}

	c.JSON(http.StatusOK, emaildto.SendReplyResponse{
		Status:   emaildto.StatusSent,
		To:       outcome.To,
		Subject:  outcome.Subject,
		ID:       outcome.Sent.ID,
		ThreadID: outcome.Sent.ThreadID,
		LabelIDs: outcome.Sent.LabelIDs,
	})
}

// queryCount reads a positive integer query parameter, falling back to the
// default list size.
func queryCount(c *gin.Context, name string) int {
	if raw := c.Query(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return usecase.DefaultListSize
}

// respondError maps usecase errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var upstreamErr *emaildomain.UpstreamError
	var validationErr *emaildomain.ValidationError
	var stateErr *emaildomain.StateError

	switch {
	case errors.As(err, &upstreamErr):
		detail := upstreamErr.Detail
		if detail == nil {
			detail = upstreamErr.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": validationErr.Message})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": stateErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
