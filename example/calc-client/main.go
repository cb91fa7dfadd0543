// Program calc-client relays stdin lines to a calc-server and prints the
// response lines, for poking at a server interactively:
//
//	$ go run ./example/calc-client -addr 127.0.0.1:7878
//	{"jsonrpc":"2.0","method":"subtract","params":[42,23],"id":1}
//	{"jsonrpc":"2.0","id":1,"result":19}
package main

import (
	"flag"
	"io"
	"log"
	"net"
	"os"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7878", "server address")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	go func() {
		if _, err := io.Copy(conn, os.Stdin); err != nil {
			log.Fatal(err)
		}
		// Half-close so the server answers any unterminated final line and
		// then ends the connection.
		if tc, ok := conn.(*net.TCPConn); ok {
			tc.CloseWrite()
		}
	}()

	if _, err := io.Copy(os.Stdout, conn); err != nil {
		log.Fatal(err)
	}
}
