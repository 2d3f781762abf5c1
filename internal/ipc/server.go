package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"github.com/google/uuid"

	"shelf/internal/api"
	"shelf/internal/catalog"
	"shelf/internal/daemon"
	"shelf/internal/logging"
	"shelf/internal/services"
)

// ServiceName is the name the RPC service is registered under.
const ServiceName = "Shelf"

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logging.NewComponentLogger(logger, "ipc"), ctx: serverCtx}
	if err := rpcServer.RegisterName(ServiceName, srv); err != nil {
		cancel()
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					return
				}
				logging.WarnWithContext(s.logger, "accept failed", "ipc_accept_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart shelf serve if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		logging.WarnWithContext(s.logger, "failed to remove socket", "ipc_socket_cleanup_failed",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "stale IPC socket may block future starts"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

// call runs fn with a per-request context and tags any error for transport.
func (s *service) call(method string, fn func(ctx context.Context) error) error {
	ctx := services.WithRequestID(s.ctx, uuid.NewString())
	logger := logging.WithContext(ctx, s.logger)
	logger.Debug("rpc call", logging.String("method", method))
	if err := fn(ctx); err != nil {
		logger.Debug("rpc call failed",
			logging.String("method", method),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.Error(err),
		)
		return encodeError(err)
	}
	return nil
}

func (s *service) catalog() *api.CatalogService {
	return s.daemon.Catalog()
}

func (s *service) CreateEntry(req CreateEntryRequest, resp *CreateEntryResponse) error {
	return s.call("CreateEntry", func(ctx context.Context) error {
		entry, err := s.catalog().CreateEntry(ctx, req.Entry)
		if err != nil {
			return err
		}
		resp.Entry = entry
		return nil
	})
}

func (s *service) GetEntry(req GetEntryRequest, resp *GetEntryResponse) error {
	return s.call("GetEntry", func(ctx context.Context) error {
		entry, err := s.catalog().GetEntry(ctx, req.ID)
		if err != nil {
			return err
		}
		resp.Found = entry != nil
		resp.Entry = entry
		return nil
	})
}

func (s *service) UpdateEntry(req UpdateEntryRequest, resp *UpdateEntryResponse) error {
	return s.call("UpdateEntry", func(ctx context.Context) error {
		entry, err := s.catalog().UpdateEntry(ctx, req.Entry)
		if err != nil {
			return err
		}
		resp.Entry = entry
		return nil
	})
}

func (s *service) DeleteEntry(req DeleteEntryRequest, resp *DeleteEntryResponse) error {
	return s.call("DeleteEntry", func(ctx context.Context) error {
		existed, err := s.catalog().DeleteEntry(ctx, req.ID)
		if err != nil {
			return err
		}
		resp.Existed = existed
		return nil
	})
}

func (s *service) ListEntries(req ListEntriesRequest, resp *ListEntriesResponse) error {
	return s.call("ListEntries", func(ctx context.Context) error {
		statuses, ok := catalog.ParseStatuses(req.Statuses)
		if !ok {
			return services.Wrap(services.ErrValidation, "ipc", "list entries", fmt.Sprintf("invalid status filter %v", req.Statuses), nil)
		}
		entries, err := s.catalog().ListEntries(ctx, catalog.Filter{Statuses: statuses, Query: req.Query})
		if err != nil {
			return err
		}
		resp.Entries = entries
		return nil
	})
}

func (s *service) GetImageForEntry(req GetImageForEntryRequest, resp *ImageResponse) error {
	return s.call("GetImageForEntry", func(ctx context.Context) error {
		img, err := s.catalog().GetImageForEntry(ctx, req.EntryID)
		if err != nil {
			return err
		}
		resp.Image = img
		return nil
	})
}

func (s *service) GetImageByLink(req GetImageByLinkRequest, resp *ImageResponse) error {
	return s.call("GetImageByLink", func(ctx context.Context) error {
		img, err := s.catalog().GetImageByLink(ctx, req.Link)
		if err != nil {
			return err
		}
		resp.Image = img
		return nil
	})
}

func (s *service) ListImages(_ ListImagesRequest, resp *ListImagesResponse) error {
	return s.call("ListImages", func(ctx context.Context) error {
		infos, err := s.catalog().ListImages(ctx)
		if err != nil {
			return err
		}
		resp.Images = infos
		return nil
	})
}

func (s *service) ClearImages(_ ClearImagesRequest, resp *ClearImagesResponse) error {
	return s.call("ClearImages", func(ctx context.Context) error {
		removed, err := s.catalog().ClearImages(ctx)
		if err != nil {
			return err
		}
		resp.Removed = removed
		return nil
	})
}

func (s *service) ExportEntries(_ ExportEntriesRequest, resp *ExportEntriesResponse) error {
	return s.call("ExportEntries", func(ctx context.Context) error {
		doc, count, err := s.catalog().ExportEntries(ctx)
		if err != nil {
			return err
		}
		resp.Document = string(doc)
		resp.Count = count
		return nil
	})
}

func (s *service) ImportEntries(req ImportEntriesRequest, resp *ImportEntriesResponse) error {
	return s.call("ImportEntries", func(ctx context.Context) error {
		entries, err := s.catalog().ImportEntries(ctx, []byte(req.Document))
		resp.Entries = entries
		return err
	})
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	return s.call("Status", func(ctx context.Context) error {
		status, err := s.daemon.Status(ctx)
		if err != nil {
			return err
		}
		resp.Status = status
		return nil
	})
}
