package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const jscode2sessionURL = "https://api.weixin.qq.com/sns/jscode2session"

// WeChatClient exchanges a miniprogram login code for an openid via the
// jscode2session endpoint. This is a one-shot code exchange, not an
// OAuth2 flow.
type WeChatClient struct {
	appID     string
	appSecret string
	http      *http.Client
}

// SessionExchanger is implemented by WeChatClient; the login service
// depends on this so tests can stub the exchange.
type SessionExchanger interface {
	Code2Session(ctx context.Context, code string) (openid string, err error)
}

func NewWeChatClient(appID, appSecret string, client *http.Client) *WeChatClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WeChatClient{appID: appID, appSecret: appSecret, http: client}
}

type sessionResponse struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// Code2Session resolves a login code to the caller's openid.
func (c *WeChatClient) Code2Session(ctx context.Context, code string) (string, error) {
	params := url.Values{
		"appid":      {c.appID},
		"secret":     {c.appSecret},
		"js_code":    {code},
		"grant_type": {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jscode2sessionURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build jscode2session request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("jscode2session request: %w", err)
	}
	defer resp.Body.Close()

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("decode jscode2session response: %w", err)
	}
	if session.ErrCode != 0 {
		return "", fmt.Errorf("wechat login failed: %d %s", session.ErrCode, session.ErrMsg)
	}
	if session.OpenID == "" {
		return "", fmt.Errorf("wechat login returned no openid")
	}
	return session.OpenID, nil
}
