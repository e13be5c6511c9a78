package engine

/*
#cgo pkg-config: libavformat libavcodec libavutil libswscale

#include <stdlib.h>
#include <libavformat/avformat.h>
#include <libavcodec/avcodec.h>
#include <libavutil/imgutils.h>
#include <libswscale/swscale.h>
#include <libavutil/log.h>

typedef struct {
    AVFormatContext *formatCtx;
    AVCodecContext  *codecCtx;
    AVFrame         *frame;
    AVFrame         *frameRGBA;
    struct SwsContext *swsCtx;
    int             videoStream;
    uint8_t         *bufferRGBA;
} Decoder;

int open_decoder(const char *locator, Decoder *d) {
    av_log_set_level(AV_LOG_ERROR);
    d->videoStream = -1;

    if (avformat_open_input(&d->formatCtx, locator, NULL, NULL) != 0) {
        return -1;
    }
    if (avformat_find_stream_info(d->formatCtx, NULL) < 0) {
        return -2;
    }

    for (unsigned int i = 0; i < d->formatCtx->nb_streams; i++) {
        if (d->formatCtx->streams[i]->codecpar->codec_type == AVMEDIA_TYPE_VIDEO) {
            d->videoStream = (int)i;
            break;
        }
    }
    if (d->videoStream == -1) {
        return -3;
    }

    const AVCodec *codec = avcodec_find_decoder(d->formatCtx->streams[d->videoStream]->codecpar->codec_id);
    if (!codec) {
        return -4;
    }
    d->codecCtx = avcodec_alloc_context3(codec);
    if (!d->codecCtx) {
        return -4;
    }
    avcodec_parameters_to_context(d->codecCtx, d->formatCtx->streams[d->videoStream]->codecpar);
    d->codecCtx->thread_type = FF_THREAD_FRAME;
    d->codecCtx->thread_count = 0;
    if (avcodec_open2(d->codecCtx, codec, NULL) < 0) {
        avcodec_free_context(&d->codecCtx);
        return -4;
    }

    d->frame = av_frame_alloc();
    d->frameRGBA = av_frame_alloc();

    int width = d->codecCtx->width;
    int height = d->codecCtx->height;
    int numBytes = av_image_get_buffer_size(AV_PIX_FMT_RGBA, width, height, 1);
    d->bufferRGBA = (uint8_t *)av_malloc(numBytes * sizeof(uint8_t));
    av_image_fill_arrays(d->frameRGBA->data, d->frameRGBA->linesize, d->bufferRGBA, AV_PIX_FMT_RGBA, width, height, 1);

    d->swsCtx = sws_getContext(width, height, d->codecCtx->pix_fmt,
                               width, height, AV_PIX_FMT_RGBA,
                               SWS_BILINEAR, NULL, NULL, NULL);
    return 0;
}

// Decode a single frame. Returns 1 on success, 0 on EOF, negative on error.
int decode_next(Decoder *d, uint8_t **rgba) {
    AVPacket packet;
    int ret;

    while (av_read_frame(d->formatCtx, &packet) >= 0) {
        if (packet.stream_index == d->videoStream) {
            ret = avcodec_send_packet(d->codecCtx, &packet);
            if (ret < 0) {
                av_packet_unref(&packet);
                return -1;
            }
            ret = avcodec_receive_frame(d->codecCtx, d->frame);
            if (ret == AVERROR(EAGAIN) || ret == AVERROR_EOF) {
                av_packet_unref(&packet);
                continue;
            }
            if (ret < 0) {
                av_packet_unref(&packet);
                return -2;
            }

            sws_scale(d->swsCtx,
                      (const uint8_t * const *)d->frame->data,
                      d->frame->linesize,
                      0,
                      d->codecCtx->height,
                      d->frameRGBA->data,
                      d->frameRGBA->linesize);

            *rgba = d->frameRGBA->data[0];
            av_packet_unref(&packet);
            return 1;
        }
        av_packet_unref(&packet);
    }
    return 0;
}

// Seek back to the first frame without reopening the input. Keeps looping
// seamless: no teardown, no texture recreation.
int seek_start(Decoder *d) {
    if (av_seek_frame(d->formatCtx, d->videoStream, 0, AVSEEK_FLAG_BACKWARD) < 0) {
        return -1;
    }
    avcodec_flush_buffers(d->codecCtx);
    return 0;
}

double decoder_fps(Decoder *d) {
    if (!d || d->videoStream < 0) {
        return 0;
    }
    AVStream *st = d->formatCtx->streams[d->videoStream];
    AVRational r = av_guess_frame_rate(d->formatCtx, st, NULL);
    if (r.den == 0) {
        return 0;
    }
    return av_q2d(r);
}

void close_decoder(Decoder *d) {
    if (!d) return;
    av_free(d->bufferRGBA);
    av_frame_free(&d->frameRGBA);
    av_frame_free(&d->frame);
    avcodec_free_context(&d->codecCtx);
    if (d->formatCtx) {
        avformat_close_input(&d->formatCtx);
    }
}
*/
import "C"

import (
	"fmt"
	"io"
	"unsafe"
)

// videoDecoder wraps the C decoder for one media item.
type videoDecoder struct {
	cdec   C.Decoder
	width  int
	height int
	fps    float64
}

func openDecoder(locator string) (*videoDecoder, error) {
	cLocator := C.CString(locator)
	defer C.free(unsafe.Pointer(cLocator))

	dec := &videoDecoder{}
	if ret := C.open_decoder(cLocator, &dec.cdec); ret != 0 {
		return nil, fmt.Errorf("open_decoder failed (code=%d)", int(ret))
	}

	dec.width = int(dec.cdec.codecCtx.width)
	dec.height = int(dec.cdec.codecCtx.height)
	dec.fps = float64(C.decoder_fps(&dec.cdec))
	if dec.fps <= 0 {
		dec.fps = 30 // sensible default if not available
	}
	return dec, nil
}

// nextFrame decodes one frame into an RGBA byte slice. Returns io.EOF at end
// of stream.
func (d *videoDecoder) nextFrame() ([]byte, error) {
	var data *C.uint8_t
	ret := C.decode_next(&d.cdec, &data)
	switch {
	case ret == 0:
		return nil, io.EOF
	case ret < 0:
		return nil, fmt.Errorf("decode error (code=%d)", int(ret))
	}

	bufLen := d.width * d.height * 4 // RGBA
	return C.GoBytes(unsafe.Pointer(data), C.int(bufLen)), nil
}

// rewind seeks back to the start for the next loop iteration.
func (d *videoDecoder) rewind() error {
	if ret := C.seek_start(&d.cdec); ret != 0 {
		return fmt.Errorf("seek failed (code=%d)", int(ret))
	}
	return nil
}

func (d *videoDecoder) close() {
	C.close_decoder(&d.cdec)
}
