/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package logging is a thin helper around op/go-logging to reduce the
// boilerplate of setting up a leveled, formatted logger backend for each
// of the engine's major subsystems.
package logging

import (
	"os"
	"path/filepath"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kestrel-engine/kestrel/internal/config"
	"github.com/kestrel-engine/kestrel/internal/util"
)

// Out is a German-locale printer, used throughout the engine to group large
// node counts / TT sizes with thousands separators in log and UCI output.
var Out = message.NewPrinter(language.German)

var standardFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05.000} %{shortpkg}/%{shortfile} %{level:.4s} %{message}`,
)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	uciLog      *logging.Logger
	testLog     *logging.Logger
)

func newBackend(module string, level int) *logging.Logger {
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(level), module)
	logger := logging.MustGetLogger(module)
	logger.SetBackend(leveled)
	return logger
}

// GetLog returns the standard engine logger (init, TT resize, book load,
// UCI option changes), resetting its level from the current configuration.
func GetLog() *logging.Logger {
	if standardLog == nil {
		standardLog = newBackend("standard", config.LogLevel)
	} else {
		formatted := logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", 0), standardFormat)
		leveled := logging.AddModuleLevel(formatted)
		leveled.SetLevel(logging.Level(config.LogLevel), "standard")
		standardLog.SetBackend(leveled)
	}
	return standardLog
}

// GetSearchLog returns the per-iteration search statistics logger.
func GetSearchLog() *logging.Logger {
	if searchLog == nil {
		searchLog = newBackend("search", config.SearchLogLevel)
	}
	return searchLog
}

// GetTestLog returns the logger used by package tests, leveled from
// config.TestLogLevel so test verbosity can be tuned independently of the
// engine's own loggers.
func GetTestLog() *logging.Logger {
	if testLog == nil {
		testLog = newBackend("test", config.TestLogLevel)
	}
	return testLog
}

// GetUciLog returns the logger used for raw UCI protocol traffic. Traffic
// is mirrored to a log file under config.Settings.Log.LogPath in addition
// to stdout.
func GetUciLog() *logging.Logger {
	if uciLog == nil {
		logPath, err := util.ResolveCreateFolder(config.Settings.Log.LogPath)
		if err != nil {
			logPath = "."
		}
		stdoutBackend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", 0), standardFormat)

		filePath := filepath.Join(logPath, "uci.log")
		f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		var backends []logging.Backend
		backends = append(backends, stdoutBackend)
		if err == nil {
			fileBackend := logging.NewBackendFormatter(logging.NewLogBackend(f, "", 0), standardFormat)
			backends = append(backends, fileBackend)
		}

		multi := logging.SetBackend(backends...)
		multi.SetLevel(logging.Level(config.LogLevel), "uci")
		uciLog = logging.MustGetLogger("uci")
	}
	return uciLog
}
