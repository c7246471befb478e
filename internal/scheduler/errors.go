package scheduler

import "errors"

var ErrNoImage = errors.New("wallpaper command carries no image")
