package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"photochat/internal/errs"
	"photochat/internal/logger"
	"photochat/internal/models"
	"photochat/internal/msgs"
	"photochat/internal/services"
	"photochat/internal/utils"

	"github.com/gin-gonic/gin"
)

type RestHandler struct {
	authService       *services.AuthenticationService
	chatService       *services.ChatService
	attachmentService *services.AttachmentService
}

func NewRestHandler(
	authService *services.AuthenticationService,
	chatService *services.ChatService,
	attachmentService *services.AttachmentService,
) *RestHandler {
	return &RestHandler{
		authService:       authService,
		chatService:       chatService,
		attachmentService: attachmentService,
	}
}

func (rh *RestHandler) Register(ctx *gin.Context) {
	var registerData models.RegisterRequestBody
	if err := ctx.BindJSON(&registerData); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrInvalidRequestBody}),
		})
		return
	}

	user, registerErrs := rh.authService.Register(&registerData)
	if len(registerErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(registerErrs),
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgUserCreatedSuccessfully,
		Data:    user.ToProfileResponse(),
	})
}

func (rh *RestHandler) Login(ctx *gin.Context) {
	var loginData models.LoginRequestBody
	if err := ctx.BindJSON(&loginData); err != nil {
		logger.Errorf("Error login data json binding: %v", err)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrInvalidRequestBody}),
		})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(loginErrs),
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    loginResponse,
	})
}

func (rh *RestHandler) GetAllUsersWithPagination(ctx *gin.Context) {
	page, size := paginationParams(ctx)

	response, getErrs := rh.authService.GetAllUsersWithPagination(page, size)
	if len(getErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(getErrs),
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    response,
	})
}

func (rh *RestHandler) SearchUsers(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("q"))
	if query == "" {
		ctx.JSON(http.StatusOK, models.Response{
			Success: true,
			Message: msgs.MsgOperationSuccessful,
			Data:    []string{},
		})
		return
	}

	userIDs, err := rh.chatService.SearchUsers(query)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{err}),
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    userIDs,
	})
}

func (rh *RestHandler) GetSingleUser(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrInvalidParams}),
		})
		return
	}

	user, getErrs := rh.authService.GetSingleUser(id)
	if len(getErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(getErrs),
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    user,
	})
}

func (rh *RestHandler) UpdateUser(ctx *gin.Context) {
	var updateUserRequest models.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&updateUserRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrInvalidRequest}),
		})
		return
	}

	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrUnauthorized}),
		})
		return
	}
	updateUserRequest.ID = userID

	updatedUser, updateErrs := rh.authService.UpdateUser(&updateUserRequest)
	if len(updateErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(updateErrs),
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    updatedUser,
	})
}

func (rh *RestHandler) GetUserConversations(ctx *gin.Context) {
	page, size := paginationParams(ctx)

	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrUnauthorized}),
		})
		return
	}

	conversationsResponse, listErrs := rh.chatService.GetUserConversations(userID, page, size)
	if len(listErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(listErrs),
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    conversationsResponse,
	})
}

// CreateDirectConversation returns the existing direct conversation for the
// pair when there is one; calling it twice never creates a second record.
func (rh *RestHandler) CreateDirectConversation(ctx *gin.Context) {
	var createRequest models.CreateDirectConversationRequest
	if err := ctx.BindJSON(&createRequest); err != nil || createRequest.OtherUserID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrInvalidRequestBody}),
		})
		return
	}

	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrUnauthorized}),
		})
		return
	}

	conversation, createErrs := rh.chatService.CreateDirectConversation(userID, createRequest.OtherUserID)
	if len(createErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(createErrs),
		})
		return
	}

	last, _ := rh.chatService.GetConversationLastMessage(conversation.ID)
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    conversation.ToConversationResponse(last),
	})
}

func (rh *RestHandler) GetConversationParticipants(ctx *gin.Context) {
	conversationID, ok := rh.conversationFromPath(ctx)
	if !ok {
		return
	}

	participants, err := rh.chatService.GetConversationParticipants(conversationID)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{err}),
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    participants,
	})
}

func (rh *RestHandler) GetMessagesByConversationID(ctx *gin.Context) {
	conversationID, ok := rh.conversationFromPath(ctx)
	if !ok {
		return
	}
	page, size := paginationParams(ctx)

	userID := utils.GetUserIdFromContext(ctx)
	if !rh.chatService.CheckUserInConversation(userID, conversationID) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrNotAMember}),
		})
		return
	}

	messages, listErrs := rh.chatService.GetMessagesByConversationId(conversationID, page, size)
	if len(listErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(listErrs),
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    messages,
	})
}

// SendMessage is the REST send path: multipart form with a content field and an
// optional photo file. The photo is uploaded first; the message row is only
// created once a URL exists.
func (rh *RestHandler) SendMessage(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrUnauthorized}),
		})
		return
	}

	var messageRequest models.MessageRequest
	if err := ctx.ShouldBind(&messageRequest); err != nil || messageRequest.ConversationID == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrInvalidRequest}),
		})
		return
	}

	if !rh.chatService.CheckUserInConversation(userID, messageRequest.ConversationID) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrNotAMember}),
		})
		return
	}

	var photoURL *string
	if file, err := ctx.FormFile("photo"); err == nil {
		src, err := file.Open()
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: msgs.MsgOperationFailed,
				Errors:  models.ErrorStrings([]error{errs.ErrUnableToOpenUploadedFile}),
			})
			return
		}
		defer src.Close()

		url, uploadErr := rh.attachmentService.Upload(ctx.Request.Context(), file.Filename, src, file.Size)
		if uploadErr != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: msgs.MsgOperationFailed,
				Errors:  models.ErrorStrings([]error{uploadErr}),
			})
			return
		}
		photoURL = &url
	}

	message := &models.Message{
		ConversationID: messageRequest.ConversationID,
		Content:        messageRequest.Content,
		SenderID:       userID,
		PhotoURL:       photoURL,
	}

	saved, sendErrs := rh.chatService.SendMessage(ctx.Request.Context(), message)
	if len(sendErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(sendErrs),
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    saved,
	})
}

func (rh *RestHandler) conversationFromPath(ctx *gin.Context) (uint, bool) {
	id := ctx.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil || idInt < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrInvalidConversationId}),
		})
		return 0, false
	}
	conversationID := uint(idInt)
	if !rh.chatService.CheckConversationExists(conversationID) {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrConversationNotFound}),
		})
		return 0, false
	}
	return conversationID, true
}

func paginationParams(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(ctx.Query("size"))
	if err != nil || size < 1 {
		size = 10
	}
	return page, size
}
