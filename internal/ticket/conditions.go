package ticket

// ConditionsOfCarriage is printed in full on every ticket and embedded in the
// booking form. The renderer shrinks it to fit; never edit casually, the
// wording is legal text.
const ConditionsOfCarriage = `CONDITIONS OF CARRIAGE FOR PASSENGERS AND BAGGAGE

1. DEFINITIONS
"Carrier" means BAC Helicopters (Pty) Ltd. "Passenger" means any person, except members of the crew, carried or to be carried in an aircraft pursuant to a Ticket. "Ticket" means the document issued by or on behalf of the Carrier which includes the flight details, conditions of carriage, and notices.

2. APPLICABILITY
These Conditions of Carriage apply to the carriage of passengers and baggage by helicopter services operated by the Carrier.

3. TICKETS
3.1 The Ticket is evidence of the contract of carriage between the Carrier and the Passenger.
3.2 The Ticket is not transferable.
3.3 The Carrier will provide carriage only to the Passenger named in the Ticket.

4. FARES AND CHARGES
4.1 Fares apply only for carriage from the airport/heliport at the point of origin to the airport/heliport at the point of destination.
4.2 Fares and charges are subject to change without notice prior to booking confirmation.

5. RESERVATIONS
5.1 Reservations are not confirmed until ticketed and paid for in full.
5.2 The Carrier reserves the right to cancel reservations if payment is not received by the specified deadline.

6. CHECK-IN AND BOARDING
6.1 Passengers must check in at the designated location at the time specified by the Carrier.
6.2 The Carrier may refuse carriage if the Passenger fails to arrive at the designated check-in point on time.
6.3 The Carrier is not liable for loss or expense due to the Passenger's failure to comply with check-in requirements.

7. REFUSAL AND LIMITATION OF CARRIAGE
7.1 The Carrier may refuse to carry any Passenger or baggage if:
(a) Such action is necessary for safety reasons;
(b) Such action is necessary to comply with applicable laws or regulations;
(c) The conduct, age, or mental or physical condition of the Passenger is such as to require special assistance;
(d) The Passenger has previously committed misconduct and the Carrier has reason to believe such conduct may be repeated;
(e) The Passenger has refused to submit to a security check;
(f) The Passenger has not paid the applicable fare or charges;
(g) The Passenger does not have valid travel documents.

8. BAGGAGE
8.1 The Carrier may impose limits on the weight and dimensions of baggage.
8.2 Excess baggage may be carried subject to payment of additional charges and available space.
8.3 The Passenger must not include in baggage fragile or perishable items, money, jewelry, precious metals, electronic devices, documents, or other valuables.

9. DANGEROUS GOODS
9.1 The Passenger must not carry dangerous goods including but not limited to: compressed gases, corrosives, explosives, flammable liquids and solids, oxidizing materials, poisons, radioactive materials, and other articles that may endanger the safety of the aircraft or persons.
9.2 The Passenger acknowledges having reviewed the Dangerous Goods information provided.

10. LIABILITY OF CARRIER
10.1 The liability of the Carrier for death or injury to Passengers is governed by applicable law and international conventions.
10.2 The Carrier is not liable for any illness, injury, or disability including death, attributable to the Passenger's physical condition or aggravation thereof.
10.3 The Carrier is not liable for damage to baggage resulting from inherent defect, quality, or vice of the baggage.

11. TIME LIMITS ON CLAIMS
11.1 Claims for damage to baggage must be made in writing within 7 days of receipt.
11.2 Claims for delay must be made in writing within 21 days from the date the baggage was delivered or should have been delivered.

12. LIMITATION OF ACTIONS
12.1 Any right to damages shall be extinguished if an action is not brought within two years from the date of arrival or the date on which the aircraft ought to have arrived.

13. GENERAL
13.1 These Conditions of Carriage and any carriage performed hereunder shall be governed by the laws of the Republic of South Africa.
13.2 If any provision of these Conditions is found to be invalid, the remaining provisions shall continue to be valid and enforceable.

By signing the ticket, the Passenger acknowledges having read, understood, and agreed to these Conditions of Carriage.`
