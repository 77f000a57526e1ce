package handlers

import (
	"net/http"
	"strings"
	"time"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Введите логин и пароль")
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Неверный логин или пароль")
		return
	}

	if !user.IsActive {
		respondError(c, http.StatusForbidden, "Учётная запись заблокирована")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Неверный логин или пароль")
		return
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_login", now)

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	if err := sess.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка создания сессии")
		return
	}

	respondMessage(c, gin.H{
		"message": "Вход выполнен",
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"full_name": user.FullName,
			"role":      user.Role,
		},
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if len(req.Username) < 3 || len(req.Password) < 6 {
		respondError(c, http.StatusBadRequest, "Слишком короткий логин или пароль")
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		respondError(c, http.StatusConflict, "Пользователь уже существует")
		return
	}

	if req.Email != "" {
		database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			respondError(c, http.StatusConflict, "Email уже используется")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка обработки пароля")
		return
	}

	// через API регистрируются только обычные пользователи,
	// админ создаётся из конфигурации
	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка сохранения пользователя")
		return
	}

	respondMessage(c, gin.H{"message": "Регистрация выполнена", "id": user.ID})
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()

	respondMessage(c, gin.H{"message": "Выход выполнен"})
}

// AuthStatus сообщает, авторизован ли текущий запрос.
func AuthStatus(c *gin.Context) {
	sess := sessions.Default(c)
	_, ok := sess.Get("user_id").(uint)
	respondMessage(c, gin.H{"authenticated": ok})
}

func Me(c *gin.Context) {
	uVal, ok := c.Get("CurrentUser")
	if !ok {
		respondError(c, http.StatusUnauthorized, "Требуется авторизация")
		return
	}
	user, ok := uVal.(models.User)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Требуется авторизация")
		return
	}

	respondData(c, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"full_name":  user.FullName,
		"email":      user.Email,
		"role":       user.Role,
		"created_at": user.CreatedAt,
		"last_login": user.LastLogin,
	})
}
