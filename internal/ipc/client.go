package ipc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"resty.dev/v3"

	"github.com/driftworks/driftpaper/internal/scheduler"
)

func newClient() *resty.Client {
	path := SocketPath()

	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return net.Dial("unix", path)
			},
		},
	})

	client.SetBaseURL("http://driftpaper")
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "driftpaper")

	return client
}

func GetStatus() (*StatusResponse, error) {
	result := StatusResponse{}

	response, err := newClient().R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error fetching status: %s", response.Status())
	}
	return &result, nil
}

func GetOutputs() ([]scheduler.OutputStatus, error) {
	var result []scheduler.OutputStatus

	response, err := newClient().R().SetResult(&result).Get("/outputs")
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error fetching outputs: %s", response.Status())
	}
	return result, nil
}

func SendWallpaper(req WallpaperRequest) error {
	errResp := ErrorResponse{}

	response, err := newClient().R().SetBody(req).SetError(&errResp).Post("/wallpaper")
	if err != nil {
		return err
	}
	if response.StatusCode() != http.StatusOK {
		if errResp.Error != "" {
			return fmt.Errorf("wallpaper rejected: %s", errResp.Error)
		}
		return fmt.Errorf("error sending wallpaper: %s", response.Status())
	}
	return nil
}

func SendStop() error {
	response, err := newClient().R().Post("/stop")
	if err != nil {
		return err
	}
	if response.StatusCode() != http.StatusOK {
		return fmt.Errorf("error sending stop: %s", response.Status())
	}
	return nil
}
