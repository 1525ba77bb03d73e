package main

import (
	"github.com/waylink-go/waylink"
	"github.com/waylink-go/waylink/internal/cmdlogger"

	"github.com/spf13/cobra"
)

var dialOpcode uint16

var dialCmd = &cobra.Command{
	Use:   "dial",
	Short: "Connect to a listener and send a single header-only message to the display object",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := cmdlogger.Get()

		var (
			socket waylink.Socket
			err    error
		)
		if socketPath == "" {
			socket, err = waylink.ConnectDefault()
		} else {
			socket, err = waylink.Connect(socketPath)
		}
		if err != nil {
			return err
		}
		defer socket.Close()

		log.Info().Int("fd", socket.FD()).Msg("connected")

		msg := waylink.EncodeHeader(waylink.Header{
			ObjectID: waylink.DisplayID,
			Opcode:   waylink.Opcode(dialOpcode),
			Size:     waylink.HeaderSize,
		})
		if err := socket.Write(msg); err != nil {
			return err
		}
		log.Info().Uint16("opcode", dialOpcode).Msg("sent message")
		return nil
	},
}

func init() {
	dialCmd.Flags().Uint16Var(&dialOpcode, "opcode", 0, "opcode to send to the display object")
}
