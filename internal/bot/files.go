package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxPhotoBytes caps downloads; Telegram photos stay well below it
const maxPhotoBytes = 10 << 20

// telegramFiles downloads files users send to the bot
type telegramFiles struct {
	api    *tgbotapi.BotAPI
	client *http.Client
}

func newTelegramFiles(api *tgbotapi.BotAPI) *telegramFiles {
	return &telegramFiles{api: api, client: &http.Client{Timeout: 30 * time.Second}}
}

func (f *telegramFiles) Fetch(ctx context.Context, fileID string) ([]byte, string, error) {
	url, err := f.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get file: %w", err)
	}
	return download(ctx, f.client, url)
}

func download(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > maxPhotoBytes {
		return nil, "", fmt.Errorf("file is larger than %d bytes", maxPhotoBytes)
	}

	mime := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(data)
	}
	return data, mime, nil
}
