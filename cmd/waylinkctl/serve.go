package main

import (
	"github.com/waylink-go/waylink"
	"github.com/waylink-go/waylink/internal/cmdlogger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Bind a listener and log messages dispatched to the display object",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := cmdlogger.Get()

		var (
			listener *waylink.Listener
			err      error
		)
		if socketPath == "" {
			listener, err = waylink.BindDefault()
		} else {
			listener, err = waylink.Bind(socketPath)
		}
		if err != nil {
			return err
		}
		defer listener.Close()

		log.Info().Str("path", listener.Path()).Msg("listening")

		for {
			if err := waitReadable(listener.FD(), -1); err != nil {
				return err
			}

			socket, err := listener.Accept()
			if err != nil {
				log.Error().Err(err).Msg("accept failed")
				continue
			}
			log.Info().Int("fd", socket.FD()).Msg("accepted connection")

			go serveConnection(log, socket)
		}
	},
}

// serveConnection drives a single accepted connection until the peer
// disconnects or sends a malformed message, logging every opcode dispatched
// to the well-known display object.
func serveConnection(log zerolog.Logger, socket waylink.Socket) {
	defer socket.Close()

	conn := waylink.NewConnection(socket)
	conn.Insert(waylink.DisplayID, waylink.HandlerFunc(func(_ *waylink.Controller, h waylink.Header, _ *waylink.PayloadCursor, _ *waylink.FDCursor) (waylink.Task, error) {
		log.Debug().Uint32("object", uint32(h.ObjectID)).Uint16("opcode", uint16(h.Opcode)).Msg("dispatch")
		return waylink.TaskNone(), nil
	}))

	for {
		if err := waitReadable(socket.FD(), -1); err != nil {
			log.Info().Err(err).Msg("connection closed")
			return
		}
		// A closed peer polls as readable but yields zero bytes.
		var peek [1]byte
		if n, _, err := unix.Recvfrom(socket.FD(), peek[:], unix.MSG_PEEK|unix.MSG_DONTWAIT); err == nil && n == 0 {
			log.Info().Msg("connection closed")
			return
		}
		if err := conn.Drive(); err != nil {
			log.Info().Err(err).Msg("connection ended")
			return
		}
	}
}
