package store_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ivrlabs/callstore/internal/models"
	"github.com/ivrlabs/callstore/internal/store"
	"github.com/ivrlabs/callstore/internal/util"
	srvErrors "github.com/ivrlabs/callstore/pkg/errors"
)

func newRecord(id int) models.CallRecord {
	return models.CallRecord{
		CallID:              id,
		CustomerName:        fmt.Sprintf("Customer %d", id),
		PhoneNumber:         fmt.Sprintf("9%09d", id),
		PolicyNumber:        fmt.Sprintf("POL-%d", id),
		QuestionAsked:       "What is my premium due date?",
		CustomerResponse:    "Yes",
		ResponseType:        "Positive",
		CallStatus:          "Completed",
		ConfidenceScore:     0.78,
		AgentActionRequired: "No",
	}
}

var _ = Describe("CallStore", func() {
	var (
		ctx  context.Context
		path string
		s    *store.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		path = filepath.Join(GinkgoT().TempDir(), "calls.xlsx")

		var err error
		s, err = store.Open(path)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if s != nil {
			Expect(s.Close()).To(Succeed())
		}
	})

	Context("Open", func() {
		// Given no backing file
		// When we open the store
		// Then it creates an empty, correctly structured workbook
		It("should auto-create an empty workbook", func() {
			// Assert
			records, err := s.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())

			// A second store instance can read the created file.
			s2, err := store.Open(path)
			Expect(err).NotTo(HaveOccurred())
			records, err = s2.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})
	})

	Context("Create and Get", func() {
		// Given a valid record
		// When we create it and fetch it back by call id
		// Then every field round-trips unchanged
		It("should round-trip a created record", func() {
			// Arrange
			rec := newRecord(1003)
			rec.CustomerName = "Suresh Reddy"

			// Act
			created, err := s.Calls().Create(ctx, rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(*created).To(Equal(rec))

			fetched, err := s.Calls().Get(ctx, 1003)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(*fetched).To(Equal(rec))
		})

		// Given a record already in the store
		// When we create another record with the same call id
		// Then it fails with a conflict and the collection is unchanged
		It("should reject a duplicate call id", func() {
			// Arrange
			_, err := s.Calls().Create(ctx, newRecord(1))
			Expect(err).NotTo(HaveOccurred())

			// Act
			dup := newRecord(1)
			dup.CustomerName = "Somebody Else"
			_, err = s.Calls().Create(ctx, dup)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceConflictError(err)).To(BeTrue())

			records, err := s.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].CustomerName).To(Equal("Customer 1"))
		})

		// Given an empty store
		// When we fetch an unknown call id
		// Then it fails with not-found
		It("should return not-found for an unknown id", func() {
			_, err := s.Calls().Get(ctx, 9999)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given records with out-of-range confidence scores
		// When we try to create them
		// Then each fails with a validation error and no state changes
		It("should reject out-of-range confidence scores", func() {
			for _, score := range []float64{-0.1, 1.1} {
				rec := newRecord(7)
				rec.ConfidenceScore = score

				_, err := s.Calls().Create(ctx, rec)
				Expect(err).To(HaveOccurred())
				Expect(srvErrors.IsValidationError(err)).To(BeTrue())
			}

			records, err := s.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		// Given a record missing a mandatory field
		// When we try to create it
		// Then it fails with a validation error naming the field
		It("should reject missing mandatory fields", func() {
			rec := newRecord(8)
			rec.PhoneNumber = ""

			_, err := s.Calls().Create(ctx, rec)
			Expect(err).To(HaveOccurred())

			var verr *srvErrors.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Violations).To(ContainElement(srvErrors.FieldViolation{
				Field: models.ColumnPhoneNumber,
				Rule:  srvErrors.RuleMissing,
			}))
		})
	})

	Context("Replace", func() {
		// Given an existing record
		// When we replace it
		// Then all fields are overwritten and the row keeps its position
		It("should overwrite an existing record in place", func() {
			// Arrange
			for _, id := range []int{1, 2, 3} {
				_, err := s.Calls().Create(ctx, newRecord(id))
				Expect(err).NotTo(HaveOccurred())
			}

			// Act
			replacement := newRecord(2)
			replacement.CallStatus = "Escalated"
			replacement.ConfidenceScore = 0.2
			stored, err := s.Calls().Replace(ctx, 2, replacement)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored).To(Equal(replacement))

			records, err := s.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))
			Expect(records[1]).To(Equal(replacement))
		})

		// Given an id that does not exist
		// When we replace it
		// Then the record is created (upsert)
		It("should insert when the id is absent", func() {
			stored, err := s.Calls().Replace(ctx, 42, newRecord(42))
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.CallID).To(Equal(42))

			fetched, err := s.Calls().Get(ctx, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fetched).To(Equal(newRecord(42)))
		})

		// Given a body whose call id differs from the target id
		// When we replace
		// Then it fails with a validation error
		It("should reject an id mismatch", func() {
			_, err := s.Calls().Replace(ctx, 1, newRecord(2))
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		// Given a replacement that violates the field rules
		// When we replace an existing record
		// Then it fails and the stored record is untouched
		It("should keep the old record on validation failure", func() {
			_, err := s.Calls().Create(ctx, newRecord(5))
			Expect(err).NotTo(HaveOccurred())

			bad := newRecord(5)
			bad.CustomerName = ""
			_, err = s.Calls().Replace(ctx, 5, bad)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())

			fetched, err := s.Calls().Get(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.CustomerName).To(Equal("Customer 5"))
		})
	})

	Context("Patch", func() {
		// Given an existing record
		// When we patch a single field
		// Then that field changes and every other field keeps its prior value
		It("should merge supplied fields only", func() {
			// Arrange
			rec := newRecord(10)
			_, err := s.Calls().Create(ctx, rec)
			Expect(err).NotTo(HaveOccurred())

			// Act
			merged, err := s.Calls().Patch(ctx, 10, models.CallPatch{
				CallStatus: util.StringPtr("Escalated"),
			})

			// Assert
			Expect(err).NotTo(HaveOccurred())
			want := rec
			want.CallStatus = "Escalated"
			Expect(*merged).To(Equal(want))

			fetched, err := s.Calls().Get(ctx, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fetched).To(Equal(want))
		})

		// Given a patch with an out-of-range confidence score
		// When we apply it
		// Then it fails with a validation error and no state change
		It("should reject an out-of-range confidence score", func() {
			rec := newRecord(11)
			_, err := s.Calls().Create(ctx, rec)
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Calls().Patch(ctx, 11, models.CallPatch{
				ConfidenceScore: util.FloatPtr(1.5),
			})
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())

			fetched, err := s.Calls().Get(ctx, 11)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.ConfidenceScore).To(Equal(0.78))
		})

		// Given a patch blanking a mandatory field
		// When we apply it
		// Then it fails with a validation error
		It("should not blank a mandatory field", func() {
			_, err := s.Calls().Create(ctx, newRecord(12))
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Calls().Patch(ctx, 12, models.CallPatch{
				CustomerName: util.StringPtr(""),
			})
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		// Given an unknown call id
		// When we patch it
		// Then it fails with not-found
		It("should return not-found for an unknown id", func() {
			_, err := s.Calls().Patch(ctx, 404, models.CallPatch{
				CallStatus: util.StringPtr("Completed"),
			})
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("Delete", func() {
		// Given an existing record
		// When we delete it and then look it up or delete it again
		// Then both follow-ups fail with not-found
		It("should delete exactly once", func() {
			// Arrange
			_, err := s.Calls().Create(ctx, newRecord(20))
			Expect(err).NotTo(HaveOccurred())

			// Act
			Expect(s.Calls().Delete(ctx, 20)).To(Succeed())

			// Assert
			_, err = s.Calls().Get(ctx, 20)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

			err = s.Calls().Delete(ctx, 20)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given several records
		// When we delete one in the middle
		// Then the remaining records keep their file order
		It("should preserve file order of the remaining records", func() {
			for _, id := range []int{1, 2, 3} {
				_, err := s.Calls().Create(ctx, newRecord(id))
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(s.Calls().Delete(ctx, 2)).To(Succeed())

			records, err := s.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].CallID).To(Equal(1))
			Expect(records[1].CallID).To(Equal(3))
		})
	})

	Context("List", func() {
		BeforeEach(func() {
			for i := 1; i <= 5; i++ {
				rec := newRecord(i)
				if i%2 == 0 {
					rec.CallStatus = "Escalated"
					rec.ConfidenceScore = 0.4
				}
				_, err := s.Calls().Create(ctx, rec)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		// Given a populated store
		// When we list without options
		// Then the whole collection comes back in file order
		It("should list all records in file order", func() {
			records, err := s.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(5))
			for i, rec := range records {
				Expect(rec.CallID).To(Equal(i + 1))
			}
		})

		// Given filter options
		// When we list
		// Then only matching records come back and Count agrees
		It("should apply filters", func() {
			records, err := s.Calls().List(ctx, store.ByStatuses("Escalated"))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))

			count, err := s.Calls().Count(ctx, store.ByStatuses("Escalated"))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))

			records, err = s.Calls().List(ctx, store.ByMinConfidence(0.5))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))
		})

		// Given pagination options
		// When we list
		// Then limit and offset slice the file-ordered collection
		It("should paginate", func() {
			records, err := s.Calls().List(ctx, store.WithLimit(2), store.WithOffset(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].CallID).To(Equal(3))
			Expect(records[1].CallID).To(Equal(4))

			records, err = s.Calls().List(ctx, store.WithOffset(10))
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})
	})

	Context("Persistence", func() {
		// Given records committed through one store instance
		// When a fresh instance opens the same file
		// Then it sees the identical collection
		It("should survive a reopen", func() {
			// Arrange
			rec := newRecord(100)
			rec.ConfidenceScore = 0.5
			_, err := s.Calls().Create(ctx, rec)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Calls().Create(ctx, newRecord(101))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Calls().Delete(ctx, 101)).To(Succeed())

			// Act
			s2, err := store.Open(path)
			Expect(err).NotTo(HaveOccurred())

			// Assert
			records, err := s2.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0]).To(Equal(rec))
		})

		// Given a populated store
		// When we snapshot it
		// Then the snapshot is a loadable workbook equal to the collection
		It("should write loadable snapshots", func() {
			// Arrange
			for _, id := range []int{1, 2} {
				_, err := s.Calls().Create(ctx, newRecord(id))
				Expect(err).NotTo(HaveOccurred())
			}

			// Act
			snapshotPath := filepath.Join(filepath.Dir(path), "snapshot.xlsx")
			Expect(s.Calls().Snapshot(ctx, snapshotPath)).To(Succeed())

			// Assert
			s2, err := store.Open(snapshotPath)
			Expect(err).NotTo(HaveOccurred())
			records, err := s2.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})
	})

	Context("Concurrent mutation", func() {
		// Given many goroutines creating records with distinct ids
		// When all run at once
		// Then every create succeeds and every record is present afterwards
		It("should not lose concurrent creates with distinct ids", func() {
			const numGoroutines = 20
			var wg sync.WaitGroup
			errs := make(chan error, numGoroutines)

			for i := 1; i <= numGoroutines; i++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					if _, err := s.Calls().Create(ctx, newRecord(id)); err != nil {
						errs <- fmt.Errorf("create %d: %w", id, err)
					}
				}(i)
			}
			wg.Wait()
			close(errs)

			var failures []error
			for err := range errs {
				failures = append(failures, err)
			}
			Expect(failures).To(BeEmpty(), "Expected no errors from concurrent creates, got: %v", failures)

			records, err := s.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(numGoroutines))

			ids := make(map[int]bool, len(records))
			for _, rec := range records {
				Expect(ids[rec.CallID]).To(BeFalse(), "duplicate id %d", rec.CallID)
				ids[rec.CallID] = true
			}
		})

		// Given many goroutines creating records with the same id
		// When all run at once
		// Then exactly one succeeds and the rest fail with a conflict
		It("should admit exactly one of several same-id creates", func() {
			const numGoroutines = 10
			var wg sync.WaitGroup
			results := make(chan error, numGoroutines)

			for i := 0; i < numGoroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.Calls().Create(ctx, newRecord(77))
					results <- err
				}()
			}
			wg.Wait()
			close(results)

			successes, conflicts := 0, 0
			for err := range results {
				switch {
				case err == nil:
					successes++
				case srvErrors.IsResourceConflictError(err):
					conflicts++
				default:
					Fail(fmt.Sprintf("unexpected error: %v", err))
				}
			}
			Expect(successes).To(Equal(1))
			Expect(conflicts).To(Equal(numGoroutines - 1))

			records, err := s.Calls().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
		})

		// Given readers running while writers mutate
		// When they interleave
		// Then every read observes a fully committed collection
		It("should serve consistent reads during writes", func() {
			var wg sync.WaitGroup
			stop := make(chan struct{})
			readErrs := make(chan error, 1)

			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
					}
					records, err := s.Calls().List(ctx)
					if err != nil {
						select {
						case readErrs <- err:
						default:
						}
						return
					}
					seen := make(map[int]bool, len(records))
					for _, rec := range records {
						if seen[rec.CallID] {
							select {
							case readErrs <- fmt.Errorf("duplicate id %d observed", rec.CallID):
							default:
							}
							return
						}
						seen[rec.CallID] = true
					}
				}
			}()

			for i := 1; i <= 10; i++ {
				_, err := s.Calls().Create(ctx, newRecord(i))
				Expect(err).NotTo(HaveOccurred())
			}
			close(stop)
			wg.Wait()

			select {
			case err := <-readErrs:
				Fail(fmt.Sprintf("reader observed inconsistent state: %v", err))
			default:
			}
		})
	})
})
