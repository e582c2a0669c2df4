package brokertest

import (
	"context"
	"slices"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kuksa-sdk/kuksa-go/pkg/convert"
	"github.com/kuksa-sdk/kuksa-go/pkg/value"
	"github.com/kuksa-sdk/kuksa-go/pkg/wire/valv1"
)

type v1Server struct {
	valv1.UnimplementedVALServer
	b *Broker
}

func v1Error(path string, code codes.Code, msg string) *valv1.DataEntryError {
	e := &valv1.Error{Code: 400, Reason: "bad_request", Message: msg}
	switch code {
	case codes.NotFound:
		e.Code, e.Reason = 404, "not_found"
	case codes.PermissionDenied:
		e.Code, e.Reason = 403, "forbidden"
	}
	return &valv1.DataEntryError{Path: path, Error: e}
}

func (s *v1Server) entry(sig *Signal, view valv1.View, fields []valv1.Field) *valv1.DataEntry {
	got, _ := s.b.Signal(sig.Metadata.Path)
	de := &valv1.DataEntry{Path: sig.Metadata.Path}
	switch view {
	case valv1.ViewTargetValue:
		de.ActuatorTarget = convert.ToV1Datapoint(got.Target)
	case valv1.ViewMetadata:
		de.Metadata = convert.MetadataToV1(got.Metadata)
		return de
	default:
		de.Value = convert.ToV1Datapoint(got.Current)
	}
	if slices.Contains(fields, valv1.FieldMetadata) {
		de.Metadata = convert.MetadataToV1(got.Metadata)
	}
	return de
}

func (s *v1Server) Get(_ context.Context, req *valv1.GetRequest) (*valv1.GetResponse, error) {
	resp := &valv1.GetResponse{}
	for _, er := range req.Entries {
		sig, ok := s.b.lookup(er.Path)
		if !ok {
			resp.Errors = append(resp.Errors, v1Error(er.Path, codes.NotFound, "path not found"))
			continue
		}
		resp.Entries = append(resp.Entries, s.entry(sig, er.View, er.Fields))
	}
	if len(resp.Errors) > 0 {
		resp.Error = &valv1.Error{Code: 404, Reason: "not_found", Message: "one or more paths not found"}
	}
	return resp, nil
}

func (s *v1Server) Set(_ context.Context, req *valv1.SetRequest) (*valv1.SetResponse, error) {
	resp := &valv1.SetResponse{}
	for _, u := range req.Updates {
		if u.Entry == nil {
			return nil, status.Error(codes.InvalidArgument, "update without entry")
		}
		path := u.Entry.Path
		sig, ok := s.b.lookup(path)
		if !ok {
			resp.Errors = append(resp.Errors, v1Error(path, codes.NotFound, "path not found"))
			continue
		}
		if code, failed := s.b.failure(path); failed {
			resp.Errors = append(resp.Errors, v1Error(path, code, "write rejected"))
			continue
		}
		declared := sig.Metadata.DataType
		if slices.Contains(u.Fields, valv1.FieldValue) {
			dp, err := convert.FromV1Datapoint(u.Entry.Value, declared)
			if err != nil {
				resp.Errors = append(resp.Errors, v1Error(path, codes.InvalidArgument, err.Error()))
				continue
			}
			s.b.write(valv1.VAL_Set_FullMethodName, sig, false, dp)
		}
		if slices.Contains(u.Fields, valv1.FieldActuatorTarget) {
			if sig.Metadata.EntryType != value.EntryTypeActuator {
				resp.Errors = append(resp.Errors, v1Error(path, codes.InvalidArgument, "not an actuator"))
				continue
			}
			dp, err := convert.FromV1Datapoint(u.Entry.ActuatorTarget, declared)
			if err != nil {
				resp.Errors = append(resp.Errors, v1Error(path, codes.InvalidArgument, err.Error()))
				continue
			}
			s.b.write(valv1.VAL_Set_FullMethodName, sig, true, dp)
		}
	}
	return resp, nil
}

// Subscribe serves one view for all entries; the view of the first entry
// decides.
func (s *v1Server) Subscribe(req *valv1.SubscribeRequest, stream grpc.ServerStreamingServer[valv1.SubscribeResponse]) error {
	if len(req.Entries) == 0 {
		return status.Error(codes.InvalidArgument, "no entries")
	}
	paths := make([]string, len(req.Entries))
	for i, e := range req.Entries {
		if _, ok := s.b.lookup(e.Path); !ok {
			return status.Errorf(codes.NotFound, "path %q not found", e.Path)
		}
		paths[i] = e.Path
	}
	view, fields := req.Entries[0].View, req.Entries[0].Fields
	target := view == valv1.ViewTargetValue

	return s.b.serve(stream.Context(), paths, target, func(cs []change) error {
		resp := &valv1.SubscribeResponse{}
		for _, c := range cs {
			sig, _ := s.b.lookup(c.path)
			de := &valv1.DataEntry{Path: c.path}
			if target {
				de.ActuatorTarget = convert.ToV1Datapoint(c.dp)
			} else {
				de.Value = convert.ToV1Datapoint(c.dp)
			}
			if slices.Contains(fields, valv1.FieldMetadata) {
				de.Metadata = convert.MetadataToV1(sig.Metadata)
			}
			resp.Updates = append(resp.Updates, &valv1.EntryUpdate{Entry: de, Fields: fields})
		}
		return stream.Send(resp)
	})
}

func (s *v1Server) GetServerInfo(context.Context, *valv1.GetServerInfoRequest) (*valv1.GetServerInfoResponse, error) {
	return &valv1.GetServerInfoResponse{Name: ServerName, Version: ServerVersion}, nil
}
