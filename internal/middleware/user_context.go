package middleware

import (
	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := database.DB.First(&user, uid).Error; err == nil {
					c.Set("CurrentUser", user)
				}
			}
		}

		c.Next()
	}
}

// CurrentUserID — id пользователя из сессии для поля performed_by в истории.
// nil, если запрос анонимный.
func CurrentUserID(c *gin.Context) *uint {
	sess := sessions.Default(c)
	if uid, ok := sess.Get("user_id").(uint); ok && uid > 0 {
		return &uid
	}
	return nil
}
