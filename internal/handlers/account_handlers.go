package handlers

import (
	"net/http"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/services"
	"ecohaven_backend/internal/storage"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the public account endpoints.
type AccountHandler struct {
	accountService services.AccountService
	files          FileResolver
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as services.AccountService, files FileResolver) *AccountHandler {
	return &AccountHandler{accountService: as, files: files}
}

// Register handles POST /account/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req services.RegisterAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.accountService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Register: Error from accountService.Register")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /account/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if !bindJSON(c, &creds) {
		return
	}
	resp, err := h.accountService.Login(c.Request.Context(), creds)
	if err != nil {
		respondServiceError(c, err, "Login: Error from accountService.Login")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the caller's account as currently stored.
func (h *AccountHandler) Me(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondServiceError(c, err, "Me: Error from accountService.GetAccount")
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateMe updates the caller's profile and returns a fresh token.
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	var req services.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.accountService.UpdateAccount(c.Request.Context(), principal(c).ID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateMe: Error from accountService.UpdateAccount")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePassword handles PUT /account/me/password.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accountService.ChangePassword(c.Request.Context(), principal(c).ID, req); err != nil {
		respondServiceError(c, err, "ChangePassword: Error from accountService.ChangePassword")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Password updated successfully")
}

// DeleteMe removes the caller's account after confirming the password.
func (h *AccountHandler) DeleteMe(c *gin.Context) {
	var req services.DeleteAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), principal(c).ID, req.Password); err != nil {
		respondServiceError(c, err, "DeleteMe: Error from accountService.DeleteAccount")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Account deleted successfully")
}

// UploadProfilePicture stores a new picture from the "profile_pic" field.
func (h *AccountHandler) UploadProfilePicture(c *gin.Context) {
	fh, ok := uploadedFile(c, "profile_pic")
	if !ok {
		return
	}
	resp, err := h.accountService.UploadProfilePicture(c.Request.Context(), principal(c).ID, fh)
	if err != nil {
		respondServiceError(c, err, "UploadProfilePicture: Error from accountService.UploadProfilePicture")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ServeProfilePicture handles GET /account/profile-picture/:filename.
func (h *AccountHandler) ServeProfilePicture(c *gin.Context) {
	serveFile(c, h.files, storage.ProfilePictures)
}

// GetAccounts lists accounts for staff.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	var params services.ListParams
	if !bindQuery(c, &params) {
		return
	}
	result, err := h.accountService.GetAccounts(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "GetAccounts: Error from accountService.GetAccounts")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAccountByID handles GET /account/:id.
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	id, ok := parseID(c, "id", "account")
	if !ok {
		return
	}
	account, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetAccountByID: Error from accountService.GetAccount")
		return
	}
	c.JSON(http.StatusOK, account)
}
