// Package portal 是 AP 模式下的配网页面：选择网络、保存凭据、重启。
package portal

import (
	"context"
	"embed"
	"html/template"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/ir-remote/internal/metrics"
	"github.com/taoyao-code/ir-remote/internal/storage"
	"github.com/taoyao-code/ir-remote/internal/wifi"
)

//go:embed templates/*.html
var templateFS embed.FS

const scanTimeout = 8 * time.Second

// Scanner 扫描周边网络
type Scanner interface {
	Scan(ctx context.Context) ([]wifi.Network, error)
}

// message 页面顶部提示
type message struct {
	Kind string
	Text template.HTML
}

var (
	msgError   = &message{Kind: "error", Text: "Failed to save settings.<br/>Missing parameters"}
	msgSuccess = &message{Kind: "success", Text: "Settings saved.<br/>You can restart the device."}
)

// Portal 配网门户
type Portal struct {
	ip      string
	store   storage.CredentialStore
	scanner Scanner
	restart func()
	metrics *metrics.AppMetrics
	logger  *zap.Logger
	tmpl    *template.Template

	askForRestart atomic.Bool
}

// New 创建门户；ip 为热点地址，restart 在用户二次确认后调用
func New(ip string, store storage.CredentialStore, scanner Scanner, restart func(), m *metrics.AppMetrics, logger *zap.Logger) *Portal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Portal{
		ip:      ip,
		store:   store,
		scanner: scanner,
		restart: restart,
		metrics: m,
		logger:  logger,
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Register 挂载门户路由
func (p *Portal) Register(r *gin.Engine) {
	r.SetHTMLTemplate(p.tmpl)
	r.Use(p.captiveRedirect())

	r.GET("/", p.index)
	r.POST("/setSettings", p.setSettings)
	r.GET("/restart", p.handleRestart)
	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "notfound.html", nil)
	})
}

func (p *Portal) rootURL() string {
	return "http://" + p.ip + "/"
}

// captiveRedirect 访问的 Host 不是热点地址时一律跳转到门户首页
func (p *Portal) captiveRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if host != p.ip {
			c.Redirect(http.StatusFound, p.rootURL())
			c.Abort()
			return
		}
		c.Next()
	}
}

func (p *Portal) index(c *gin.Context) {
	var msg *message
	if _, ok := c.GetQuery("error"); ok {
		msg = msgError
	} else if _, ok := c.GetQuery("success"); ok {
		msg = msgSuccess
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), scanTimeout)
	defer cancel()
	networks, err := p.scanner.Scan(ctx)
	if err != nil {
		p.logger.Warn("wifi scan failed", zap.Error(err))
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Message":  msg,
		"Networks": networks,
	})
}

func (p *Portal) setSettings(c *gin.Context) {
	ssid, hasSSID := c.GetPostForm("ssid")
	password, hasPassword := c.GetPostForm("password")

	result := "error"
	if hasSSID && hasPassword {
		creds := storage.Credentials{SSID: ssid, Password: password}
		if err := p.store.Save(c.Request.Context(), creds); err != nil {
			p.logger.Warn("save wifi settings failed", zap.String("ssid", ssid), zap.Error(err))
		} else {
			p.logger.Info("wifi settings saved", zap.String("ssid", ssid))
			result = "success"
		}
	}
	if p.metrics != nil {
		p.metrics.PortalSaveTotal.WithLabelValues(result).Inc()
	}

	c.Redirect(http.StatusFound, p.rootURL()+"?"+result+"=")
}

// handleRestart 第一次访问只记录意图并跳到 ?valid=，确认后才重启
func (p *Portal) handleRestart(c *gin.Context) {
	if _, ok := c.GetQuery("valid"); !ok {
		p.askForRestart.Store(true)
		c.Redirect(http.StatusFound, p.rootURL()+"restart?valid=")
		return
	}
	if !p.askForRestart.Load() {
		c.Redirect(http.StatusFound, p.rootURL())
		return
	}

	p.logger.Info("restart requested from portal")
	c.HTML(http.StatusOK, "restarting.html", nil)
	if p.restart != nil {
		p.restart()
	}
}
