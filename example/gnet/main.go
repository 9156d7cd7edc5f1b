// FILE: example/gnet/main.go
package main

import (
	"fmt"

	"github.com/panjf2000/gnet/v2"

	"github.com/rathven/ilog"
	"github.com/rathven/ilog/compat"
)

// echoServer routes its connection events and gnet's internal messages
// through the same logging engine.
type echoServer struct {
	gnet.BuiltinEventEngine

	log *ilog.ModuleLogger
}

func (s *echoServer) OnBoot(eng gnet.Engine) gnet.Action {
	s.log.Info("Echo server booted")
	return gnet.None
}

func (s *echoServer) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	s.log.Debug("Connection opened from", c.RemoteAddr().String())
	return nil, gnet.None
}

func (s *echoServer) OnClose(c gnet.Conn, err error) gnet.Action {
	if err != nil {
		s.log.Warn("Connection closed with error:", err)
	} else {
		s.log.Debug("Connection closed from", c.RemoteAddr().String())
	}
	return gnet.None
}

func (s *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	_, _ = c.Write(buf)
	return gnet.None
}

func main() {
	engine, err := ilog.NewBuilder().
		TargetString("both").
		FilePath("./gnet_echo.log").
		LevelString("debug").
		Build()
	if err != nil {
		panic(err)
	}
	defer engine.Shutdown()

	server := &echoServer{log: ilog.NewModule(engine, "ECHO")}

	fmt.Println("Starting echo server on :9000")
	err = gnet.Run(server, "tcp://:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(compat.NewGnetAdapter(engine)),
	)
	if err != nil {
		panic(err)
	}
}
