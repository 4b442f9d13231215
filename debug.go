// Copyright (c) 2025 the scram-go authors
//
// MIT License

//go:build debug

package zbdd

import "github.com/sirupsen/logrus"

// _DEBUG enables the structure checks after every construction path and
// verbose logging.
const _DEBUG bool = true

func init() {
	log.SetLevel(logrus.DebugLevel)
}
