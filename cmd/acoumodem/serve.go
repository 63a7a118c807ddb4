package main

import (
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"acoumodem"
	"acoumodem/internal/wavio"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func newServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host a local HTTP interface for encode/decode and live progress.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listenAddr == "" {
				listenAddr = viper.GetString("listen_addr")
			}
			return runServer(listenAddr)
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on, e.g. :8080")
	return cmd
}

func runServer(addr string) error {
	r := gin.Default()

	r.POST("/encode", handleEncode)
	r.POST("/decode", handleDecode)
	r.GET("/ws/progress", handleProgressWS)

	return r.Run(addr)
}

func handleEncode(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modeName := c.DefaultQuery("mode", "phone")
	mode := acoumodem.Phone
	if modeName == "wideband" {
		mode = acoumodem.Wideband
	}

	result, err := acoumodem.Encode(data, acoumodem.EncodeOptions{
		SampleRate: viper.GetInt("sample_rate"),
		Mode:       mode,
		Compress:   c.Query("compress") == "true",
		Password:   []byte(c.Query("password")),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmp, err := os.CreateTemp("", "acoumodem-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	if err := wavio.WriteWAV(tmp.Name(), result.PCM, result.SampleRate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(tmp.Name(), "encoded.wav")
}

func handleDecode(c *gin.Context) {
	fileHeader, err := c.FormFile("wav")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmp, err := os.CreateTemp("", "acoumodem-upload-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(tmp.Name())

	if err := c.SaveUploadedFile(fileHeader, tmp.Name()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	samples, sampleRate, err := wavio.ReadWAV(tmp.Name())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dec := acoumodem.NewDecoder(acoumodem.DecoderOptions{SampleRate: sampleRate})
	dec.Start()
	for i := 0; i < len(samples); i += decodeBlockSize {
		end := i + decodeBlockSize
		if end > len(samples) {
			end = len(samples)
		}
		_ = dec.ProcessSamples(samples[i:end])
	}

	result := dec.Result()
	if result == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"needsPassword": dec.NeedsPassword(),
			"error":         "decode incomplete",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"text":      result.Text,
		"checksum":  result.Checksum,
		"encrypted": result.Encrypted,
	})
}

// wsObserver streams progress.Snapshot JSON frames to a websocket
// connection, per SPEC_FULL.md §4.15.
type wsObserver struct {
	conn *websocket.Conn
}

func (o wsObserver) OnUpdate(s acoumodem.Progress) {
	_ = o.conn.WriteJSON(s)
}

func handleProgressWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	dec := acoumodem.NewDecoder(acoumodem.DecoderOptions{
		SampleRate: viper.GetInt("sample_rate"),
		Observer:   wsObserver{conn: conn},
	})
	dec.Start()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
