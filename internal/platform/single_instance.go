package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const wakeMessage = "show"

// InstanceGuard holds the single-instance lock. A second instance can ask
// the holder to show itself through NotifyRunningInstance.
type InstanceGuard struct {
	listener net.Listener
	address  string
	wg       sync.WaitGroup
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve calls onWake for every wake request until Release is called.
func (guard *InstanceGuard) Serve(onWake func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	guard.wg.Add(1)
	go func() {
		defer guard.wg.Done()
		for {
			conn, err := guard.listener.Accept()
			if err != nil {
				return
			}
			if readWake(conn) && onWake != nil {
				onWake()
			}
		}
	}()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.wg.Wait()
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// NotifyRunningInstance asks the instance holding the lock to show itself.
func NotifyRunningInstance(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("notify running instance: %w", err)
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := fmt.Fprintln(conn, wakeMessage); err != nil {
		return fmt.Errorf("notify running instance: %w", err)
	}
	return nil
}

func readWake(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == wakeMessage
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
