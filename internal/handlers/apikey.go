package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyos-backend/internal/services"
)

type ApiKeyHandler struct {
  apiKeyService services.ApiKeyService
}

func NewApiKeyHandler(apiKeyService services.ApiKeyService) *ApiKeyHandler {
  return &ApiKeyHandler{apiKeyService: apiKeyService}
}

func (kh *ApiKeyHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    Name string `json:"name"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  key, plaintext, err := kh.apiKeyService.CreateKey(c.Request.Context(), userID, req.Name)
  if err != nil {
    RespondError(c, err)
    return
  }
  // The plaintext key appears here and nowhere else.
  c.JSON(http.StatusCreated, gin.H{
    "id":        key.ID,
    "name":      key.Name,
    "key":       plaintext,
    "createdAt": key.CreatedAt,
  })
}

func (kh *ApiKeyHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  keys, err := kh.apiKeyService.ListKeys(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"keys": keys})
}

func (kh *ApiKeyHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  keyID, ok := parseUUIDParam(c, "keyId")
  if !ok {
    return
  }
  if err := kh.apiKeyService.DeleteKey(c.Request.Context(), userID, keyID); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}
