package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// visitor 单个来源 IP 在窗口内的尝试时间
type visitor struct {
	attempts []time.Time
}

// LoginRateLimit 登录接口限流中间件
// 每个来源 IP 在 window 内最多 maxAttempts 次尝试，超出返回 429；
// 后台按 window 周期清理不再活跃的 IP，防止表无限增长
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for ip, v := range visitors {
				v.attempts = pruneBefore(v.attempts, cutoff)
				if len(v.attempts) == 0 {
					delete(visitors, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{}
			visitors[ip] = v
		}
		v.attempts = pruneBefore(v.attempts, now.Add(-window))
		if len(v.attempts) >= maxAttempts {
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		v.attempts = append(v.attempts, now)
		mu.Unlock()

		c.Next()
	}
}

// pruneBefore 丢弃 cutoff 及之前的时间戳，复用底层数组
func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
