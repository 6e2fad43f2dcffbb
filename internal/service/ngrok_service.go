package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"sync"

	"go.uber.org/zap"
	"golang.ngrok.com/ngrok/v2"
)

// NgrokTunnel 把本地监听地址通过 ngrok 暴露到公网。
// 隧道建立后 URL 返回公网地址，分享链接基础地址据此切换。
type NgrokTunnel struct {
	logger *zap.Logger
	token  string
	domain string

	agent ngrok.Agent
	ln    net.Listener
	url   string
}

// NewNgrokTunnel 创建隧道，domain 为空时由 ngrok 随机分配
func NewNgrokTunnel(logger *zap.Logger, token, domain string) *NgrokTunnel {
	return &NgrokTunnel{logger: logger, token: token, domain: domain}
}

// Start 建立隧道，addr 为转发目标的本地监听地址
func (t *NgrokTunnel) Start(ctx context.Context, addr string) error {
	if t.token == "" {
		return errors.New("ngrok auth token not configured")
	}

	agent, err := ngrok.NewAgent(ngrok.WithAuthtoken(t.token))
	if err != nil {
		return fmt.Errorf("create ngrok agent: %w", err)
	}

	var opts []ngrok.EndpointOption
	if t.domain != "" {
		opts = append(opts, ngrok.WithURL("https://"+t.domain))
	}
	ln, err := agent.Listen(ctx, opts...)
	if err != nil {
		return fmt.Errorf("open ngrok endpoint: %w", err)
	}

	t.agent = agent
	t.ln = ln
	t.url = endpointURL(ln)
	t.logger.Info("ngrok tunnel established", zap.String("url", t.url))

	go t.acceptLoop(ln, addr)
	return nil
}

// endpointURL 提取隧道公网地址，不同版本的 listener 暴露的 URL 方法签名不一致
func endpointURL(ln net.Listener) string {
	switch u := ln.(type) {
	case interface{ URL() *url.URL }:
		return u.URL().String()
	case interface{ URL() string }:
		return u.URL()
	}
	return ln.Addr().String()
}

// acceptLoop 接收隧道连接并逐个转发
func (t *NgrokTunnel) acceptLoop(ln net.Listener, addr string) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			t.logger.Debug("ngrok tunnel accept stopped", zap.Error(err))
			return
		}
		go t.forward(conn, addr)
	}
}

// forward 在隧道连接与本地服务之间双向搬运数据
func (t *NgrokTunnel) forward(remote net.Conn, addr string) {
	local, err := net.Dial("tcp", addr)
	if err != nil {
		remote.Close()
		t.logger.Error("ngrok forward dial failed", zap.String("addr", addr), zap.Error(err))
		return
	}

	// 任一方向拷贝结束即关闭两端，让另一方向退出
	var once sync.Once
	closeBoth := func() {
		once.Do(func() {
			remote.Close()
			local.Close()
		})
	}
	go func() {
		defer closeBoth()
		_, _ = io.Copy(local, remote)
	}()
	defer closeBoth()
	_, _ = io.Copy(remote, local)
}

// Stop 关闭隧道监听并断开 agent
func (t *NgrokTunnel) Stop(ctx context.Context) error {
	if t.ln != nil {
		if err := t.ln.Close(); err != nil {
			t.logger.Warn("ngrok listener close error", zap.Error(err))
		}
	}
	if t.agent != nil {
		if err := t.agent.Disconnect(); err != nil {
			t.logger.Warn("ngrok agent disconnect error", zap.Error(err))
		}
	}
	return nil
}

// URL 返回当前隧道公网地址
func (t *NgrokTunnel) URL() string {
	return t.url
}
