package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/healthtrack/records-api/internal/model"
)

// WriteStaysCSV renders patient stay rows as CSV with a header row.
func WriteStaysCSV(w io.Writer, rows []*model.PatientStayRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"hospitalization_id", "patient_id", "first_name", "surname",
		"department_code", "ward_number", "bed_number", "diagnosis",
		"admission_date", "discharge_date",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		discharge := ""
		if r.DischargeDate != nil {
			discharge = r.DischargeDate.Format(time.DateOnly)
		}
		if err := cw.Write([]string{
			strconv.FormatInt(r.HospitalizationID, 10),
			strconv.FormatInt(r.PatientID, 10),
			r.FirstName,
			r.Surname,
			r.DepartmentCode,
			strconv.Itoa(r.WardNumber),
			strconv.Itoa(r.BedNumber),
			r.Diagnosis,
			r.AdmissionDate.Format(time.DateOnly),
			discharge,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOccupancyCSV renders the ward occupancy summary as CSV.
func WriteOccupancyCSV(w io.Writer, rows []*model.WardOccupancyRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"department_code", "ward_number", "bed_count", "occupied_beds", "free_beds",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.DepartmentCode,
			strconv.Itoa(r.WardNumber),
			strconv.Itoa(r.BedCount),
			strconv.Itoa(r.OccupiedBeds),
			strconv.Itoa(r.FreeBeds),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
