package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/core/config"
	"github.com/samwilcox/nextboard-sub000/internal/core/logger"
)

// ipChecker IP 检查器，白名单支持 CIDR 和普通 IP
type ipChecker struct {
	allowNets []*net.IPNet
	allowSet  map[string]bool
}

// newIPChecker 创建 IP 检查器
func newIPChecker(allowIPs []string) *ipChecker {
	c := &ipChecker{allowSet: make(map[string]bool)}
	for _, ip := range allowIPs {
		ip = strings.TrimSpace(ip)
		if ip == "" {
			continue
		}

		// 先按 CIDR 解析，失败则按普通 IP 处理
		if _, network, err := net.ParseCIDR(ip); err == nil {
			c.allowNets = append(c.allowNets, network)
		} else {
			c.allowSet[ip] = true
		}
	}
	return c
}

// isLocalIP 检查是否是本地 IP (支持 IPv4 和 IPv6)
func isLocalIP(ipStr string) bool {
	if ipStr == "localhost" || ipStr == "127.0.0.1" || ipStr == "::1" {
		return true
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	// IPv4 内网段
	if ipv4 := ip.To4(); ipv4 != nil {
		if ipv4[0] == 192 && ipv4[1] == 168 {
			return true
		}
		if ipv4[0] == 10 {
			return true
		}
		if ipv4[0] == 172 && ipv4[1] >= 16 && ipv4[1] <= 31 {
			return true
		}
		if ipv4[0] == 127 {
			return true
		}
	}

	return ip.IsLoopback()
}

// isAllowed 检查 IP 是否在白名单中
func (c *ipChecker) isAllowed(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, network := range c.allowNets {
		if network.Contains(ip) {
			return true
		}
	}
	return c.allowSet[ipStr]
}

// MgtWhitelistMW 管理接口 IP 白名单中间件
// - 自动允许 localhost/127.0.0.1/内网 IP
// - 显式配置的白名单 IP 允许
// - 其他 IP 拒绝
func MgtWhitelistMW() gin.HandlerFunc {
	cfg := config.Get()
	checker := newIPChecker(cfg.Security.MgtAllowIPs)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if isLocalIP(clientIP) || checker.isAllowed(clientIP) {
			c.Next()
			return
		}

		logger.Warn("mgt access denied: IP not in whitelist",
			logger.String("ip", clientIP),
			logger.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"data":    gin.H{"code": 403, "message": "access denied: IP not in whitelist"},
		})
	}
}

// IPLimiter IP频率限制器
type IPLimiter struct {
	mu     sync.Mutex
	visits map[string][]int64
	limit  int
	window int64
}

// NewIPLimiter 创建IP限制器
func NewIPLimiter(limit int, windowSeconds int) *IPLimiter {
	return &IPLimiter{
		visits: make(map[string][]int64),
		limit:  limit,
		window: int64(windowSeconds),
	}
}

// Allow 检查是否允许访问
func (l *IPLimiter) Allow(ip string) bool {
	now := time.Now().Unix()

	l.mu.Lock()
	defer l.mu.Unlock()

	// 清理过期记录
	var valid []int64
	for _, ts := range l.visits[ip] {
		if now-ts < l.window {
			valid = append(valid, ts)
		}
	}
	l.visits[ip] = valid

	if len(l.visits[ip]) >= l.limit {
		return false
	}

	l.visits[ip] = append(l.visits[ip], now)
	return true
}

// RateLimitMW 频率限制中间件
func RateLimitMW(limiter *IPLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !limiter.Allow(ip) {
			logger.Warn("rate limit exceeded",
				logger.String("ip", ip),
				logger.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"data":    gin.H{"code": 429, "message": "too many requests"},
			})
			return
		}

		c.Next()
	}
}
