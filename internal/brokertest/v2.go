package brokertest

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kuksa-sdk/kuksa-go/pkg/convert"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv2"
)

type v2Server struct {
	valv2.UnimplementedVALServer
	b *Broker
}

func (s *v2Server) signal(id *valv2.SignalID) (*Signal, error) {
	if id == nil {
		return nil, status.Error(codes.InvalidArgument, "signal id missing")
	}
	var (
		sig *Signal
		ok  bool
	)
	if id.HasID {
		sig, ok = s.b.lookupID(id.ID)
	} else {
		sig, ok = s.b.lookup(id.Path)
	}
	if !ok {
		return nil, status.Errorf(codes.NotFound, "signal %q (id %d) not found", id.Path, id.ID)
	}
	return sig, nil
}

func (s *v2Server) checkWrite(sig *Signal) error {
	if code, ok := s.b.failure(sig.Metadata.Path); ok {
		return status.Errorf(code, "write to %s rejected", sig.Metadata.Path)
	}
	return nil
}

func (s *v2Server) current(sig *Signal) *valv2.Datapoint {
	got, _ := s.b.Signal(sig.Metadata.Path)
	return convert.ToV2Datapoint(got.Current)
}

func (s *v2Server) GetValue(_ context.Context, req *valv2.GetValueRequest) (*valv2.GetValueResponse, error) {
	sig, err := s.signal(req.SignalID)
	if err != nil {
		return nil, err
	}
	return &valv2.GetValueResponse{DataPoint: s.current(sig)}, nil
}

func (s *v2Server) GetValues(_ context.Context, req *valv2.GetValuesRequest) (*valv2.GetValuesResponse, error) {
	resp := &valv2.GetValuesResponse{}
	for _, id := range req.SignalIDs {
		sig, err := s.signal(id)
		if err != nil {
			return nil, err
		}
		resp.DataPoints = append(resp.DataPoints, s.current(sig))
	}
	return resp, nil
}

func (s *v2Server) PublishValue(_ context.Context, req *valv2.PublishValueRequest) (*valv2.PublishValueResponse, error) {
	sig, err := s.signal(req.SignalID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWrite(sig); err != nil {
		return nil, err
	}
	dp, err := convert.FromV2Datapoint(req.DataPoint, sig.Metadata.DataType)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	s.b.write(valv2.VAL_PublishValue_FullMethodName, sig, false, dp)
	return &valv2.PublishValueResponse{}, nil
}

func (s *v2Server) actuate(req *valv2.ActuateRequest) (*Signal, value.Value, error) {
	sig, err := s.signal(req.SignalID)
	if err != nil {
		return nil, value.Value{}, err
	}
	if err := s.checkWrite(sig); err != nil {
		return nil, value.Value{}, err
	}
	if sig.Metadata.EntryType != value.EntryTypeActuator {
		return nil, value.Value{}, status.Errorf(codes.InvalidArgument, "%s is not an actuator", sig.Metadata.Path)
	}
	v, err := convert.FromV2Value(req.Value, sig.Metadata.DataType)
	if err != nil || v.IsEmpty() {
		return nil, value.Value{}, status.Errorf(codes.InvalidArgument, "invalid value for %s: %v", sig.Metadata.Path, err)
	}
	return sig, v, nil
}

func (s *v2Server) Actuate(_ context.Context, req *valv2.ActuateRequest) (*valv2.ActuateResponse, error) {
	sig, v, err := s.actuate(req)
	if err != nil {
		return nil, err
	}
	s.b.write(valv2.VAL_Actuate_FullMethodName, sig, true, value.Datapoint{Value: v})
	return &valv2.ActuateResponse{}, nil
}

// BatchActuate validates every request before applying any.
func (s *v2Server) BatchActuate(_ context.Context, req *valv2.BatchActuateRequest) (*valv2.BatchActuateResponse, error) {
	sigs := make([]*Signal, len(req.ActuateRequests))
	vals := make([]value.Value, len(req.ActuateRequests))
	for i, r := range req.ActuateRequests {
		sig, v, err := s.actuate(r)
		if err != nil {
			return nil, err
		}
		sigs[i], vals[i] = sig, v
	}
	for i, sig := range sigs {
		s.b.write(valv2.VAL_BatchActuate_FullMethodName, sig, true, value.Datapoint{Value: vals[i]})
	}
	return &valv2.BatchActuateResponse{}, nil
}

func (s *v2Server) ListMetadata(_ context.Context, req *valv2.ListMetadataRequest) (*valv2.ListMetadataResponse, error) {
	resp := &valv2.ListMetadataResponse{}
	for _, sig := range s.b.sorted() {
		p := sig.Metadata.Path
		if req.Root == "" || p == req.Root || strings.HasPrefix(p, req.Root+".") {
			resp.Metadata = append(resp.Metadata, convert.MetadataToV2(sig.Metadata))
		}
	}
	if len(resp.Metadata) == 0 {
		return nil, status.Errorf(codes.NotFound, "no signals below %q", req.Root)
	}
	return resp, nil
}

func (s *v2Server) Subscribe(req *valv2.SubscribeRequest, stream grpc.ServerStreamingServer[valv2.SubscribeResponse]) error {
	for _, p := range req.SignalPaths {
		if _, ok := s.b.lookup(p); !ok {
			return status.Errorf(codes.NotFound, "signal %q not found", p)
		}
	}
	return s.b.serve(stream.Context(), req.SignalPaths, false, func(cs []change) error {
		resp := &valv2.SubscribeResponse{Entries: make(map[string]*valv2.Datapoint, len(cs))}
		for _, c := range cs {
			resp.Entries[c.path] = convert.ToV2Datapoint(c.dp)
		}
		return stream.Send(resp)
	})
}

func (s *v2Server) SubscribeById(req *valv2.SubscribeByIDRequest, stream grpc.ServerStreamingServer[valv2.SubscribeByIDResponse]) error {
	paths := make([]string, len(req.SignalIDs))
	ids := make(map[string]int32, len(req.SignalIDs))
	for i, id := range req.SignalIDs {
		sig, ok := s.b.lookupID(id)
		if !ok {
			return status.Errorf(codes.NotFound, "signal id %d not found", id)
		}
		paths[i] = sig.Metadata.Path
		ids[sig.Metadata.Path] = id
	}
	return s.b.serve(stream.Context(), paths, false, func(cs []change) error {
		resp := &valv2.SubscribeByIDResponse{Entries: make(map[int32]*valv2.Datapoint, len(cs))}
		for _, c := range cs {
			resp.Entries[ids[c.path]] = convert.ToV2Datapoint(c.dp)
		}
		return stream.Send(resp)
	})
}

func (s *v2Server) GetServerInfo(context.Context, *valv2.GetServerInfoRequest) (*valv2.GetServerInfoResponse, error) {
	return &valv2.GetServerInfoResponse{Name: ServerName, Version: ServerVersion}, nil
}
