package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuth HTTP Basic 认证中间件，保护管理面板
//
// password 以 "$2" 开头时按 bcrypt 哈希校验，否则做恒定时间明文比较。
// 认证失败返回 401 并携带 WWW-Authenticate 头，让浏览器弹出登录框。
func BasicAuth(username, password string) gin.HandlerFunc {
	hashed := strings.HasPrefix(password, "$2")

	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !credentialsMatch(user, pass, username, password, hashed) {
			c.Header("WWW-Authenticate", `Basic realm="Admin Panel"`)
			c.String(http.StatusUnauthorized, "Необхідна авторизація")
			c.Abort()
			return
		}

		c.Next()
	}
}

func credentialsMatch(user, pass, wantUser, wantPass string, hashed bool) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1

	var passOK bool
	if hashed {
		passOK = bcrypt.CompareHashAndPassword([]byte(wantPass), []byte(pass)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 1
	}

	return userOK && passOK
}
