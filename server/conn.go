package server

import (
	"encoding/json"
	"errors"
	"io"
	"net"

	"github.com/rs/xid"

	"github.com/mnehpets/streamrpc/framing"
	"github.com/mnehpets/streamrpc/jsonrpc"
)

// handleConn owns one connection's pipeline from accept to close. Lines are
// processed strictly in arrival order; the response for a line is fully
// written before the next line is read. Any fault here ends this connection
// only.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer s.untrack(conn)
	defer conn.Close()

	log := s.log.With().
		Str("conn_id", xid.New().String()).
		Str("remote", conn.RemoteAddr().String()).
		Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("connection pipeline panicked")
		}
	}()
	log.Debug().Msg("connection opened")

	reader := framing.NewLineReader(conn, s.maxLineBytes)
	for {
		line, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug().Msg("connection closed by peer")
			} else {
				log.Warn().Err(err).Msg("read failed")
			}
			return
		}

		req, failure := jsonrpc.Validate(line)
		resp := failure
		if failure == nil {
			resp = s.dispatcher.Dispatch(s.ctx, req)
		}
		if resp == nil {
			// Notification: handler ran, nothing to write.
			continue
		}

		payload, err := json.Marshal(resp)
		if err != nil {
			log.Error().Err(err).Msg("unserializable handler result")
			resp = jsonrpc.NewFailure(resp.ID, jsonrpc.NewError(jsonrpc.CodeInternalError, "Internal error"))
			payload, _ = json.Marshal(resp)
		}
		if err := framing.WriteLine(conn, payload); err != nil {
			log.Warn().Err(err).Msg("write failed")
			return
		}
	}
}
