package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/mnowak/basilisk/internal/game"
	"github.com/mnowak/basilisk/internal/ui"
)

const maxConnectionsPerIP = 2

var (
	ipCounter = make(map[string]int)
	ipMutex   sync.Mutex

	scores *game.HighScoreService
)

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

func incrementIP(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]++
}

func decrementIP(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]--
	if ipCounter[ip] <= 0 {
		delete(ipCounter, ip)
	}
}

func getCount(ip string) int {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	return ipCounter[ip]
}

func connectionLimiterMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		currentCount := getCount(ip)
		if currentCount >= maxConnectionsPerIP {
			log.Warn("connection denied: IP limit exceeded", "ip", ip, "limit", maxConnectionsPerIP)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", currentCount+1, maxConnectionsPerIP)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		incrementIP(ip)
		log.Info("connection accepted", "ip", ip, "count", getCount(ip))
		next(s)
		decrementIP(ip)
		log.Info("connection closed", "ip", ip, "count", getCount(ip))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if envOr("BASILISK_DEBUG", "") != "" {
		log.SetLevel(log.DebugLevel)
	}

	host := envOr("BASILISK_HOST", "0.0.0.0")
	port := envOr("BASILISK_PORT", "6996")
	keyPath := envOr("BASILISK_PRIVATE_KEY_PATH", ".ssh/basilisk_ed25519")
	dbPath := envOr("BASILISK_DB_PATH", "basilisk.db")

	var err error
	scores, err = game.NewHighScoreService(dbPath)
	if err != nil {
		log.Error("opening high score database, scores will not be saved", "path", dbPath, "error", err)
	} else {
		defer scores.Close()
	}

	sshServer, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware,
		),
	)
	if err != nil {
		log.Fatal("failed to build ssh server", "error", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("starting SSH server", "host", host, "port", port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("could not stop server", "error", err)
	}
}

// viewHandler builds one independent game UI per SSH session. Each session
// gets its own controller; only the high-score database is shared.
func viewHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()
	controllerModel := ui.NewControllerModel(scores, pty.Window.Width, pty.Window.Height)
	return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
}
